package grid

import (
	"slices"
	"testing"
)

// expectLabels fails unless r holds exactly the given hands.
func expectLabels(t *testing.T, r Range, labels ...string) {
	t.Helper()
	var want Range
	for _, l := range labels {
		c, err := CellFor(l)
		if err != nil {
			t.Fatal(err)
		}
		want[c.Index()] = true
	}
	if r != want {
		t.Fatalf("expected %v, got %v", want.Labels(), r.Labels())
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, c := range All() {
		expectLabels(t, ParseRange(c.Label), c.Label)
	}
}

func TestParseAllPairs(t *testing.T) {
	r := ParseRange("22+")
	expectLabels(t, r, "AA", "KK", "QQ", "JJ", "TT", "99", "88", "77", "66", "55", "44", "33", "22")
}

func TestParsePairPlus(t *testing.T) {
	expectLabels(t, ParseRange("JJ+"), "AA", "KK", "QQ", "JJ")
	expectLabels(t, ParseRange("AA+"), "AA")
	expectLabels(t, ParseRange("77"), "77")
}

func TestParseKickerExpansion(t *testing.T) {
	expectLabels(t, ParseRange("AJ+"), "AJs", "AJo", "AQs", "AQo", "AKs", "AKo")
	expectLabels(t, ParseRange("KTs+"), "KTs", "KJs", "KQs")
	expectLabels(t, ParseRange("Q9o+"), "Q9o", "QTo", "QJo")
}

func TestParseStructureExpansion(t *testing.T) {
	r := ParseRange("98s+")
	expectLabels(t, r, "98s", "T9s", "JTs", "QJs", "KQs", "AKs")
	for _, c := range All() {
		if c.Kind == Offsuit && r[c.Index()] {
			t.Fatalf("98s+ must not set offsuit %s", c.Label)
		}
	}
	expectLabels(t, ParseRange("T9o+"), "T9o", "JTo", "QJo", "KQo", "AKo")
	// "J9+" keeps a one-gap: J9, QT, KJ, AQ.
	expectLabels(t, ParseRange("j9+"), "J9s", "J9o", "QTs", "QTo", "KJs", "KJo", "AQs", "AQo")
}

func TestParseNoSuffixSetsBoth(t *testing.T) {
	expectLabels(t, ParseRange("KQ"), "KQs", "KQo")
	expectLabels(t, ParseRange("QK"), "KQs", "KQo")
	expectLabels(t, ParseRange("KQo"), "KQo")
}

func TestParseCaseAndWhitespace(t *testing.T) {
	expectLabels(t, ParseRange("  aks , tt ,, 76S "), "AKs", "TT", "76s")
}

func TestParseSkipsMalformed(t *testing.T) {
	inputs := []string{"", "XX", "AKx", "AAs", "AK+s", "A", "AKQ", "++", "K K", "AK++", "1T"}
	for _, in := range inputs {
		if r := ParseRange(in); !r.Empty() {
			t.Errorf("ParseRange(%q) = %v, want empty", in, r.Labels())
		}
	}
}

func TestParseRangeReport(t *testing.T) {
	r, skipped := ParseRangeReport("AA, bogus, KQs, AKx")
	expectLabels(t, r, "AA", "KQs")
	if !slices.Equal(skipped, []string{"bogus", "AKx"}) {
		t.Fatalf("unexpected skipped tokens %v", skipped)
	}
}

func TestParseCombined(t *testing.T) {
	r := ParseRange("22+,A2s+,K9o+")
	if r.Count() != 13+12+4 {
		t.Fatalf("expected 29 cells, got %d (%v)", r.Count(), r.Labels())
	}
}

func TestExpansionFor(t *testing.T) {
	cases := []struct {
		pair, plus bool
		high       int
		want       Expansion
	}{
		{false, false, 0, Exact},
		{true, false, 4, Exact},
		{true, true, 4, PairLadder},
		{false, true, int(Ace), Kicker},
		{false, true, int(Queen), Kicker},
		{false, true, int(Jack), Structure},
		{false, true, int(Three), Structure},
	}
	for _, tc := range cases {
		if got := expansionFor(tc.pair, tc.plus, tc.high); got != tc.want {
			t.Errorf("expansionFor(%v, %v, %d) = %s, want %s", tc.pair, tc.plus, tc.high, got, tc.want)
		}
	}
}
