package core

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

var (
	// ErrSampleRateUnset is returned when the cell is read before any Set.
	ErrSampleRateUnset = errors.New("sample rate not set")
	// ErrSampleRateAlreadySet is returned to every writer after the first.
	ErrSampleRateAlreadySet = errors.New("sample rate already set")
	// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
	ErrInvalidSampleRate = errors.New("invalid sample rate")
)

// SampleRateCell holds a sample rate that is written exactly once.
//
// The zero value is an empty cell. Concurrent writers race on a single
// compare-and-swap: exactly one succeeds, all others get
// ErrSampleRateAlreadySet. Nodes never read the cell themselves; the host
// reads it once and passes the rate to every constructor.
type SampleRateCell struct {
	bits atomic.Uint64
}

// ValidateSampleRate reports whether rate can drive a graph.
func ValidateSampleRate(rate float64) error {
	if rate <= 0 || !IsFinite(rate) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, rate)
	}
	return nil
}

// Set stores rate if the cell is still empty.
// An invalid rate is rejected without consuming the cell.
func (c *SampleRateCell) Set(rate float64) error {
	if err := ValidateSampleRate(rate); err != nil {
		return err
	}

	if !c.bits.CompareAndSwap(0, math.Float64bits(rate)) {
		return fmt.Errorf("%w: %v (have %v)", ErrSampleRateAlreadySet, rate, math.Float64frombits(c.bits.Load()))
	}

	return nil
}

// Get returns the stored rate or ErrSampleRateUnset.
func (c *SampleRateCell) Get() (float64, error) {
	bits := c.bits.Load()
	if bits == 0 {
		return 0, ErrSampleRateUnset
	}
	return math.Float64frombits(bits), nil
}

// MustGet is like Get but panics when the cell is empty.
// Reading before the host configured the rate is a programming error.
func (c *SampleRateCell) MustGet() float64 {
	rate, err := c.Get()
	if err != nil {
		panic("core: " + err.Error())
	}
	return rate
}

// IsSet reports whether a rate has been stored.
func (c *SampleRateCell) IsSet() bool {
	return c.bits.Load() != 0
}
