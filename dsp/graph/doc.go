// Package graph defines the node processing contract and the routing
// combinators that compose nodes into an owned tree.
//
// Every node implements Node[I, O]: Process consumes one call's worth of
// input channels and fills the output channels, returning a Status instead
// of an error. BlockSize declares, once and for the node's lifetime, the
// frame lengths it accepts and produces. Combinators (Series, Parallel,
// Compose) cache those declarations at assembly time, size their scratch
// storage from them and an explicit Config budget, and split or reject
// calls whose shape a child cannot take.
//
// Process paths never allocate, block, or perform I/O. Soft conditions
// (NeedMoreInput, PartialOutput) travel up the tree verbatim; shape and
// capacity violations are programming errors and panic with ErrShapeMismatch
// or ErrCapacityExceeded.
package graph
