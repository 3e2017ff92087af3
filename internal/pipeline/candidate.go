package pipeline

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
)

// CandidateWidth is how many decimal digits an account number carries.
const CandidateWidth = 16

// Candidate is a single account number under test. It stays a fixed-width
// decimal string end to end; round-tripping through an integer would drop
// leading-zero digits on formatting.
type Candidate string

// ErrInvalidRange means the configured bounds cannot produce a sequence.
var ErrInvalidRange = errors.New("invalid account range")

// Sequence enumerates a contiguous, inclusive range of candidates in
// ascending order. It is lazy and restartable: ranging over it twice
// yields the same candidates.
type Sequence struct {
	start uint64
	end   uint64
	width int
}

// NewSequence validates the bounds and builds a sequence over them.
// Both bounds must be decimal strings of exactly CandidateWidth digits
// and start must be strictly less than end.
func NewSequence(start, end string) (Sequence, error) {
	startVal, err := parseBound(start)
	if err != nil {
		return Sequence{}, err
	}
	endVal, err := parseBound(end)
	if err != nil {
		return Sequence{}, err
	}
	if startVal >= endVal {
		return Sequence{}, fmt.Errorf(
			"%w: start %s must be less than end %s",
			ErrInvalidRange, start, end,
		)
	}
	return Sequence{start: startVal, end: endVal, width: CandidateWidth}, nil
}

func parseBound(bound string) (uint64, error) {
	if len(bound) != CandidateWidth {
		return 0, fmt.Errorf(
			"%w: bound %q must be exactly %d digits",
			ErrInvalidRange, bound, CandidateWidth,
		)
	}
	value, err := strconv.ParseUint(bound, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bound %q is not numeric", ErrInvalidRange, bound)
	}
	return value, nil
}

// Count reports how many candidates the sequence yields.
func (s Sequence) Count() uint64 {
	return s.end - s.start + 1
}

// Start returns the first candidate of the sequence.
func (s Sequence) Start() Candidate {
	return s.format(s.start)
}

// End returns the last candidate of the sequence.
func (s Sequence) End() Candidate {
	return s.format(s.end)
}

// All yields every candidate from start to end inclusive.
func (s Sequence) All() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for v := s.start; ; v++ {
			if !yield(s.format(v)) {
				return
			}
			if v == s.end {
				return
			}
		}
	}
}

func (s Sequence) format(v uint64) Candidate {
	return Candidate(fmt.Sprintf("%0*d", s.width, v))
}
