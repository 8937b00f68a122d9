package grid

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidLength = errors.New("range must hold exactly 169 flags")

// Range holds one push (true) or fold (false) flag per cell, indexed by
// row*13+col. Being an array, a Range is copied on assignment: mutating a
// Range never touches the value it was copied from.
type Range [Cells]bool

// DecodeRange builds a Range from a flag slice of length 169.
func DecodeRange(flags []bool) (Range, error) {
	var r Range
	if len(flags) != Cells {
		return r, fmt.Errorf("%w: got %d", ErrInvalidLength, len(flags))
	}
	copy(r[:], flags)
	return r, nil
}

// UnmarshalJSON rejects arrays that do not hold exactly 169 flags, instead of
// zero filling them as the default array decoding would.
func (r *Range) UnmarshalJSON(data []byte) error {
	var flags []bool
	if err := json.Unmarshal(data, &flags); err != nil {
		return err
	}
	decoded, err := DecodeRange(flags)
	if err != nil {
		return err
	}
	*r = decoded
	return nil
}

// Flags returns the range as a fresh slice.
func (r Range) Flags() []bool {
	out := make([]bool, Cells)
	copy(out, r[:])
	return out
}

// Pushes reports whether the hand at index is in the range.
func (r Range) Pushes(index int) (bool, error) {
	if index < 0 || index >= Cells {
		return false, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	return r[index], nil
}

// Toggle returns a copy of r with the flag at index flipped.
func (r Range) Toggle(index int) (Range, error) {
	if index < 0 || index >= Cells {
		return r, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	r[index] = !r[index]
	return r, nil
}

// Count returns the number of pushed cells.
func (r Range) Count() int {
	n := 0
	for _, push := range r {
		if push {
			n++
		}
	}
	return n
}

// Empty reports whether the range folds everything.
func (r Range) Empty() bool {
	return r.Count() == 0
}

// Labels lists the pushed hands in grid order.
func (r Range) Labels() []string {
	var labels []string
	for i, push := range r {
		if push {
			labels = append(labels, cells[i].Label)
		}
	}
	return labels
}

func (r Range) String() string {
	return strings.Join(r.Labels(), ",")
}

// Combos returns how many of the 1326 two-card combinations the range holds:
// 6 per pair, 4 per suited hand and 12 per offsuit hand.
func (r Range) Combos() int {
	n := 0
	for i, push := range r {
		if !push {
			continue
		}
		switch cells[i].Kind {
		case Pair:
			n += 6
		case Suited:
			n += 4
		case Offsuit:
			n += 12
		}
	}
	return n
}
