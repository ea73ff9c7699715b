// Package driver runs a graph from the host side.
//
// A Driver owns the root node and calls it once per period with a silent
// input. Whatever the root leaves unwritten after a non-Ready status is
// replaced with silence, so the host always receives a fully defined
// buffer. The package also converts rendered periods to native sample
// formats and renders graphs offline to WAV.
package driver
