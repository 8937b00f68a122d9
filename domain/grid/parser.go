package grid

import "strings"

// Expansion selects how a token carrying a trailing "+" widens.
type Expansion uint8

const (
	// Exact sets only the named hand.
	Exact Expansion = iota
	// PairLadder sets the named pair and every higher pair.
	PairLadder
	// Kicker keeps the high card and raises the kicker up to one below it.
	// Used when the high card is an ace, king or queen.
	Kicker
	// Structure raises both cards together, keeping the gap, until the high
	// card reaches the ace.
	Structure
)

func (e Expansion) String() string {
	switch e {
	case Exact:
		return "exact"
	case PairLadder:
		return "pair-ladder"
	case Kicker:
		return "kicker"
	case Structure:
		return "structure"
	default:
		return "unknown"
	}
}

// kickerCutoff is the highest rank index whose "+" tokens expand by kicker.
const kickerCutoff = int(Queen)

func expansionFor(pair, plus bool, high int) Expansion {
	switch {
	case !plus:
		return Exact
	case pair:
		return PairLadder
	case high <= kickerCutoff:
		return Kicker
	default:
		return Structure
	}
}

type qualifier uint8

const (
	anySuit qualifier = iota
	suitedOnly
	offsuitOnly
)

// token is one recognized element of a range description.
// high and low are rank indexes with high <= low.
type token struct {
	high      int
	low       int
	qualifier qualifier
	expansion Expansion
}

func parseToken(text string) (token, bool) {
	plus := strings.HasSuffix(text, "+")
	if plus {
		text = text[:len(text)-1]
	}
	if len(text) < 2 || len(text) > 3 {
		return token{}, false
	}
	r1, ok1 := ParseRank(text[0])
	r2, ok2 := ParseRank(text[1])
	if !ok1 || !ok2 {
		return token{}, false
	}
	high, low := int(r1), int(r2)
	if high > low {
		high, low = low, high
	}

	if high == low {
		// "AAs" or "KKo+" are neither a pair nor a two-rank token.
		if len(text) != 2 {
			return token{}, false
		}
		return token{high: high, low: low, expansion: expansionFor(true, plus, high)}, true
	}

	t := token{high: high, low: low, expansion: expansionFor(false, plus, high)}
	if len(text) == 3 {
		switch lower(text[2]) {
		case 's':
			t.qualifier = suitedOnly
		case 'o':
			t.qualifier = offsuitOnly
		default:
			return token{}, false
		}
	}
	return t, true
}

// apply marks every cell the token selects.
func (t token) apply(r *Range) {
	switch t.expansion {
	case Exact:
		t.mark(r, t.high, t.low)
	case PairLadder:
		for i := 0; i <= t.high; i++ {
			r[i*Size+i] = true
		}
	case Kicker:
		for k := t.low; k > t.high; k-- {
			t.mark(r, t.high, k)
		}
	case Structure:
		for hi, lo := t.high, t.low; hi >= 0 && lo >= 0; hi, lo = hi-1, lo-1 {
			t.mark(r, hi, lo)
		}
	}
}

func (t token) mark(r *Range, high, low int) {
	if high == low {
		r[high*Size+high] = true
		return
	}
	if t.qualifier != offsuitOnly {
		r[high*Size+low] = true
	}
	if t.qualifier != suitedOnly {
		r[low*Size+high] = true
	}
}

// ParseRange expands a comma separated range description such as
// "22+, AJ+, 98s+, KQ" into a Range. Matching ignores case and the whitespace
// around each token. Tokens that match neither the pair nor the two-rank form
// are skipped: an input made only of such tokens yields an empty Range.
func ParseRange(input string) Range {
	r, _ := ParseRangeReport(input)
	return r
}

// ParseRangeReport behaves like ParseRange and also returns, in input order,
// the tokens it could not recognize.
func ParseRangeReport(input string) (Range, []string) {
	var r Range
	var skipped []string
	for _, raw := range strings.Split(input, ",") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		t, ok := parseToken(text)
		if !ok {
			skipped = append(skipped, text)
			continue
		}
		t.apply(&r)
	}
	return r, skipped
}
