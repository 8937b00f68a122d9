package grid

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the number of ranks, and so the number of rows and columns of the grid.
const Size = 13

// Cells is the number of canonical starting hands.
const Cells = Size * Size

var (
	ErrInvalidIndex = errors.New("invalid grid index")
	ErrUnknownLabel = errors.New("unknown hand label")
)

// Rank is a card rank addressed by its grid index: 0 is the ace, 12 the deuce.
type Rank uint8

const (
	Ace Rank = iota
	King
	Queen
	Jack
	Ten
	Nine
	Eight
	Seven
	Six
	Five
	Four
	Three
	Two
)

const rankSymbols = "AKQJT98765432"

// String returns the single character symbol of the rank ("A", "K", ..., "2").
func (r Rank) String() string {
	if int(r) >= Size {
		return "?"
	}
	return rankSymbols[r : r+1]
}

// ParseRank returns the rank for a symbol, ignoring case.
func ParseRank(symbol byte) (Rank, bool) {
	i := strings.IndexByte(rankSymbols, upper(symbol))
	if i < 0 {
		return 0, false
	}
	return Rank(i), true
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// Kind tells pairs, suited and offsuit hands apart.
type Kind uint8

const (
	Pair Kind = iota
	Suited
	Offsuit
)

func (k Kind) String() string {
	switch k {
	case Pair:
		return "pair"
	case Suited:
		return "suited"
	case Offsuit:
		return "offsuit"
	default:
		return "unknown"
	}
}

// Cell is one of the 169 starting hands.
// The diagonal holds the pairs, suited hands sit above it (Row < Col) and
// offsuit hands below it (Row > Col).
type Cell struct {
	Row   int
	Col   int
	Label string
	Kind  Kind
}

// Index returns the position of the cell in a Range.
func (c Cell) Index() int {
	return c.Row*Size + c.Col
}

var (
	cells   = buildCells()
	byLabel = indexLabels(cells)
)

func buildCells() [Cells]Cell {
	var out [Cells]Cell
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			c := Cell{Row: row, Col: col}
			r1, r2 := Rank(row), Rank(col)
			switch {
			case row == col:
				c.Kind = Pair
				c.Label = r1.String() + r2.String()
			case row < col:
				c.Kind = Suited
				c.Label = r1.String() + r2.String() + "s"
			default:
				c.Kind = Offsuit
				c.Label = r2.String() + r1.String() + "o"
			}
			out[c.Index()] = c
		}
	}
	return out
}

func indexLabels(all [Cells]Cell) map[string]int {
	m := make(map[string]int, Cells)
	for i, c := range all {
		m[c.Label] = i
	}
	return m
}

// Classify returns the cell at (row, col). Both coordinates must be in 0..12.
func Classify(row, col int) (Cell, error) {
	idx, err := Index(row, col)
	if err != nil {
		return Cell{}, err
	}
	return cells[idx], nil
}

// Index returns row*13+col after checking both coordinates.
func Index(row, col int) (int, error) {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrInvalidIndex, row, col)
	}
	return row*Size + col, nil
}

// CellAt returns the cell stored at index 0..168 of a Range.
func CellAt(index int) (Cell, error) {
	if index < 0 || index >= Cells {
		return Cell{}, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	return cells[index], nil
}

// All returns every cell in row-major order.
func All() [Cells]Cell {
	return cells
}

// CellFor is the inverse of the label derivation: "AKs", "ako" and "TT" all
// resolve to their cell. Higher rank must come first.
func CellFor(label string) (Cell, error) {
	label = strings.TrimSpace(label)
	if len(label) < 2 || len(label) > 3 {
		return Cell{}, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	norm := []byte{upper(label[0]), upper(label[1])}
	if len(label) == 3 {
		norm = append(norm, lower(label[2]))
	}
	idx, ok := byLabel[string(norm)]
	if !ok {
		return Cell{}, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return cells[idx], nil
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
