package deck

import (
	"fmt"

	"github.com/paulhankin/poker"
	"github.com/pterm/pterm"

	"github.com/luca-patrignani/pushfold/domain/grid"
)

// Size is the number of cards in a standard deck.
const Size = 52

// Card suit constants (0-3)
const (
	Club    = 0 // ♣ (black)
	Diamond = 1 // ♦ (red)
	Heart   = 2 // ♥ (red)
	Spade   = 3 // ♠ (black)
)

const suitLetters = "cdhs"

// Card represents a playing card. The rank is a grid rank index, so the ace
// is 0 and the deuce 12.
type Card struct {
	suit uint8     // 0-3: clubs, diamonds, hearts, spades
	rank grid.Rank // 0-12: ace down to deuce
}

// NewCard creates a new Card with validation.
//
// Parameters:
//   - suit: 0-3 (Club, Diamond, Heart, Spade)
//   - rank: grid.Ace through grid.Two
//
// Returns the Card or an error if suit or rank is invalid.
func NewCard(suit uint8, rank grid.Rank) (Card, error) {
	if suit > 3 || int(rank) >= grid.Size {
		return Card{}, fmt.Errorf("invalid card %d, %d", suit, rank)
	}
	return Card{suit: suit, rank: rank}, nil
}

// FromInt converts a raw card number (0-51) to a Card: the rank is the
// number divided by four and the suit the remainder.
func FromInt(raw int) (Card, error) {
	if raw < 0 || raw >= Size {
		return Card{}, fmt.Errorf("the card to convert has an invalid value %d", raw)
	}
	return NewCard(uint8(raw%4), grid.Rank(raw/4))
}

// Int is the inverse of FromInt.
func (c Card) Int() int {
	return int(c.rank)*4 + int(c.suit)
}

func (c Card) Suit() uint8 {
	return c.suit
}

func (c Card) Rank() grid.Rank {
	return c.rank
}

// Poker converts the card to the evaluator representation, where the ace is
// rank 1 and the king rank 13.
func (c Card) Poker() (poker.Card, error) {
	var suit poker.Suit
	switch c.suit {
	case Club:
		suit = poker.Club
	case Diamond:
		suit = poker.Diamond
	case Heart:
		suit = poker.Heart
	case Spade:
		suit = poker.Spade
	default:
		var zero poker.Card
		return zero, fmt.Errorf("invalid suit %d", c.suit)
	}
	rank := poker.Rank(1)
	if c.rank != grid.Ace {
		rank = poker.Rank(14 - int(c.rank))
	}
	return poker.MakeCard(suit, rank)
}

// Text returns the plain two character form, e.g. "As" or "Td".
func (c Card) Text() string {
	return c.rank.String() + suitLetters[c.suit:c.suit+1]
}

// String returns the card with a coloured suit symbol (♣, ♦, ♥, ♠).
func (c Card) String() string {
	var suit string
	switch c.suit {
	case Club:
		suit = pterm.Black("♣")
	case Diamond:
		suit = pterm.LightRed("♦")
	case Heart:
		suit = pterm.LightRed("♥")
	case Spade:
		suit = pterm.Black("♠")
	default:
		suit = "?"
	}
	return c.rank.String() + suit
}
