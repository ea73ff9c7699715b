// Package effects provides stateless per-sample transforms for audio graphs.
//
//   - Gain: constant multiplication, with an optional de-zipper ramp when
//     the factor changes.
//   - SoftClipper: rational tanh-style saturation bounded to [-1, 1].
//
// Both are shape-preserving real-domain nodes with allocation-free
// Process calls.
package effects
