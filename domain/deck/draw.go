package deck

import (
	"fmt"
	"math/rand"
)

// DrawTwo deals two distinct cards, every ordered pair being equally likely.
func DrawTwo(rng *rand.Rand) (Card, Card) {
	first := rng.Intn(Size)
	second := rng.Intn(Size - 1)
	if second >= first {
		second++
	}
	a, _ := FromInt(first)
	b, _ := FromInt(second)
	return a, b
}

// CheckDistinct verifies that both cards are real, different cards.
func CheckDistinct(a, b Card) error {
	pa, err := a.Poker()
	if err != nil {
		return fmt.Errorf("invalid first card: %w", err)
	}
	pb, err := b.Poker()
	if err != nil {
		return fmt.Errorf("invalid second card: %w", err)
	}
	if pa == pb {
		return fmt.Errorf("cards must be distinct, both are %s", a.Text())
	}
	return nil
}
