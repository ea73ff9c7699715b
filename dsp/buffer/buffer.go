package buffer

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded reports a request for more channels or frames than a
// Block was sized for. It is raised as a panic: exceeding a preallocated
// budget is a programming error, never a silent truncation.
var ErrCapacityExceeded = errors.New("buffer capacity exceeded")

// Sample is the element domain of a buffer: real or complex.
type Sample interface {
	~float64 | ~complex128
}

// Block is preallocated multi-channel sample storage.
type Block[T Sample] struct {
	data   []T
	chans  [][]T
	view   [][]T
	frames int
}

// New returns a zero-filled Block with the given channel and frame capacity.
// Negative sizes are treated as zero.
func New[T Sample](channels, frames int) *Block[T] {
	channels = max(channels, 0)
	frames = max(frames, 0)

	b := &Block[T]{
		data:   make([]T, channels*frames),
		chans:  make([][]T, channels),
		view:   make([][]T, channels),
		frames: frames,
	}
	for c := range b.chans {
		b.chans[c] = b.data[c*frames : (c+1)*frames : (c+1)*frames]
	}
	return b
}

// Channels returns the channel capacity.
func (b *Block[T]) Channels() int {
	return len(b.chans)
}

// Frames returns the frame capacity per channel.
func (b *Block[T]) Frames() int {
	return b.frames
}

// Fits reports whether a channels × frames view fits into the block.
func (b *Block[T]) Fits(channels, frames int) bool {
	return channels >= 0 && frames >= 0 && channels <= len(b.chans) && frames <= b.frames
}

// View returns a channels × frames window onto the block. The returned
// header slice is owned by the block and reused by the next View call.
// It panics with ErrCapacityExceeded when the shape does not fit.
func (b *Block[T]) View(channels, frames int) [][]T {
	if !b.Fits(channels, frames) {
		panic(fmt.Errorf("%w: view %dx%d exceeds block %dx%d",
			ErrCapacityExceeded, channels, frames, len(b.chans), b.frames))
	}

	v := b.view[:channels]
	for c := range v {
		v[c] = b.chans[c][:frames]
	}
	return v
}

// Zero clears the full backing storage.
func (b *Block[T]) Zero() {
	clear(b.data)
}

// Frames returns the shared frame length of a view, or 0 for a view
// without channels.
func Frames[T Sample](view [][]T) int {
	if len(view) == 0 {
		return 0
	}
	return len(view[0])
}

// SliceFrames writes into dst the headers of view restricted to frames
// [start, end) and returns dst[:len(view)]. dst must have capacity for
// len(view) channels; no allocation takes place.
func SliceFrames[T Sample](dst, view [][]T, start, end int) [][]T {
	if cap(dst) < len(view) {
		panic(fmt.Errorf("%w: %d channel headers, have %d", ErrCapacityExceeded, len(view), cap(dst)))
	}
	dst = dst[:len(view)]
	for c := range view {
		dst[c] = view[c][start:end]
	}
	return dst
}

// CopyFrames copies the first n frames of every channel in src to dst.
// Channel counts must match.
func CopyFrames[T Sample](dst, src [][]T, n int) {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("buffer: channel count mismatch: dst %d, src %d", len(dst), len(src)))
	}
	for c := range dst {
		copy(dst[c][:n], src[c][:n])
	}
}

// Equal reports whether two views have the same shape and samples.
func Equal[T Sample](a, b [][]T) bool {
	if len(a) != len(b) {
		return false
	}
	for c := range a {
		if len(a[c]) != len(b[c]) {
			return false
		}
		for i := range a[c] {
			if a[c][i] != b[c][i] {
				return false
			}
		}
	}
	return true
}
