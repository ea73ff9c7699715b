// Package buffer provides the multi-channel buffer contract shared by every
// graph node and the preallocated storage combinators stage data in.
//
// A buffer view is a [][]T: one slice per channel, all of equal length (the
// frame length of the call). Block owns channels × frames of backing storage
// allocated once at assembly time and hands out views of any smaller shape
// without allocating, so Process paths stay allocation-free.
package buffer
