// Package table describes where a first-in push/fold decision happens:
// the table size, the acting position and the effective stack.
package table

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrInvalidContext = errors.New("invalid context")
	ErrInvalidKey     = errors.New("invalid context key")
)

type PlayerCount int

const (
	HeadsUp PlayerCount = 2
	FourMax PlayerCount = 4
	SixMax  PlayerCount = 6
	NineMax PlayerCount = 9
)

// PlayerCounts lists the supported table sizes, smallest first.
var PlayerCounts = []PlayerCount{HeadsUp, FourMax, SixMax, NineMax}

// Label returns the display name of the table size.
func (n PlayerCount) Label() string {
	switch n {
	case HeadsUp:
		return "Heads-up"
	case FourMax:
		return "4-max"
	case SixMax:
		return "6-max"
	case NineMax:
		return "9-max"
	default:
		return strconv.Itoa(int(n)) + " players"
	}
}

func (n PlayerCount) Valid() bool {
	return slices.Contains(PlayerCounts, n)
}

type Position string

const (
	UTG  Position = "UTG"
	UTG1 Position = "UTG+1"
	UTG2 Position = "UTG+2"
	LJ   Position = "LJ"
	HJ   Position = "HJ"
	CO   Position = "CO"
	BTN  Position = "BTN"
	SB   Position = "SB"
	// BB never acts first in, so no range is ever keyed by it.
	BB Position = "BB"
)

// Positions lists every first-in position in seating order.
var Positions = []Position{UTG, UTG1, UTG2, LJ, HJ, CO, BTN, SB}

var legalPositions = map[PlayerCount][]Position{
	HeadsUp: {SB},
	FourMax: {CO, BTN, SB},
	SixMax:  {LJ, HJ, CO, BTN, SB},
	NineMax: {UTG, UTG1, UTG2, LJ, HJ, CO, BTN, SB},
}

// LegalPositions returns, in seating order, the positions that can open
// first in at a table of n players. Unknown sizes have none.
func LegalPositions(n PlayerCount) []Position {
	return slices.Clone(legalPositions[n])
}

type Stack string

const (
	BB5  Stack = "5bb"
	BB10 Stack = "10bb"
	BB15 Stack = "15bb"
	BB20 Stack = "20bb"
)

// Stacks lists the supported stack depths, shortest first.
var Stacks = []Stack{BB5, BB10, BB15, BB20}

func (s Stack) Valid() bool {
	return slices.Contains(Stacks, s)
}

// Context identifies the stored range that applies to a decision.
type Context struct {
	Players  PlayerCount
	Position Position
	Stack    Stack
}

// Validate checks that every field is known and that the position can act
// first in at that table size.
func (c Context) Validate() error {
	if !c.Players.Valid() {
		return fmt.Errorf("%w: unsupported player count %d", ErrInvalidContext, c.Players)
	}
	if !slices.Contains(legalPositions[c.Players], c.Position) {
		return fmt.Errorf("%w: %s is not a first-in position at %s", ErrInvalidContext, c.Position, c.Players.Label())
	}
	if !c.Stack.Valid() {
		return fmt.Errorf("%w: unsupported stack %q", ErrInvalidContext, c.Stack)
	}
	return nil
}

// Key returns the storage key of the context, e.g. "6-BTN-10bb".
// The format is the persistence schema and must not change.
func (c Context) Key() string {
	return fmt.Sprintf("%d-%s-%s", c.Players, c.Position, c.Stack)
}

func (c Context) String() string {
	return fmt.Sprintf("%s %s %s", c.Players.Label(), c.Position, c.Stack)
}

// ParseKey is the inverse of Context.Key. It only accepts keys of valid contexts.
func ParseKey(key string) (Context, error) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return Context{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil || strconv.Itoa(n) != parts[0] {
		return Context{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	c := Context{
		Players:  PlayerCount(n),
		Position: Position(parts[1]),
		Stack:    Stack(parts[2]),
	}
	if err := c.Validate(); err != nil {
		return Context{}, fmt.Errorf("%w: %q: %w", ErrInvalidKey, key, err)
	}
	return c, nil
}

// AllContexts enumerates every valid context by table size, position and stack.
func AllContexts() []Context {
	var out []Context
	for _, n := range PlayerCounts {
		for _, p := range legalPositions[n] {
			for _, s := range Stacks {
				out = append(out, Context{Players: n, Position: p, Stack: s})
			}
		}
	}
	return out
}
