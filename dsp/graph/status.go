package graph

import "fmt"

// StatusKind classifies the outcome of one Process call.
type StatusKind uint8

const (
	// StatusReady means the full output was produced.
	StatusReady StatusKind = iota
	// StatusNeedMoreInput means no output could be produced from the given input.
	StatusNeedMoreInput
	// StatusPartialOutput means only a prefix of the requested output was produced.
	StatusPartialOutput
)

// Status is the result of one Process call. It is a node's only way to
// signal backpressure or incomplete work.
type Status struct {
	Kind StatusKind
	// N is SamplesNeeded for StatusNeedMoreInput and FramesWritten for
	// StatusPartialOutput.
	N int
}

// Ready reports full output.
func Ready() Status {
	return Status{Kind: StatusReady}
}

// NeedMoreInput reports that samples more input frames are required.
func NeedMoreInput(samples int) Status {
	return Status{Kind: StatusNeedMoreInput, N: samples}
}

// PartialOutput reports that only the first frames output frames were written.
func PartialOutput(frames int) Status {
	return Status{Kind: StatusPartialOutput, N: frames}
}

// IsReady reports whether s is StatusReady.
func (s Status) IsReady() bool {
	return s.Kind == StatusReady
}

// SamplesNeeded returns the missing input count of a NeedMoreInput status.
func (s Status) SamplesNeeded() int {
	if s.Kind != StatusNeedMoreInput {
		return 0
	}
	return s.N
}

// FramesWritten returns how many leading frames of the output are valid.
// full is the requested frame length, reported for Ready.
func (s Status) FramesWritten(full int) int {
	switch s.Kind {
	case StatusReady:
		return full
	case StatusPartialOutput:
		return min(max(s.N, 0), full)
	default:
		return 0
	}
}

func (s Status) String() string {
	switch s.Kind {
	case StatusReady:
		return "Ready"
	case StatusNeedMoreInput:
		return fmt.Sprintf("NeedMoreInput{samples_needed: %d}", s.N)
	case StatusPartialOutput:
		return fmt.Sprintf("PartialOutput{frames_written: %d}", s.N)
	default:
		return fmt.Sprintf("Status(%d)", s.Kind)
	}
}
