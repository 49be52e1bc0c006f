package handanalyzer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"headsuppoker-server/pkg/deck"
)

func analyze(t *testing.T, cards string) *HandAnalyzer {
	t.Helper()

	h, err := New(deck.CardsFromString(cards))
	assert.NoError(t, err)
	assert.NotNil(t, h)

	return h
}

func TestNew_cardCount(t *testing.T) {
	a := assert.New(t)

	h, err := New(deck.CardsFromString("2c,3c,4c,5c"))
	a.Equal(ErrTooFewCards, err)
	a.Nil(h)

	h, err = New(deck.CardsFromString("2c,3c,4c,5c,6c,7c,8c,9c"))
	a.Equal(ErrTooManyCards, err)
	a.Nil(h)
}

func TestHandAnalyzer_GetHand(t *testing.T) {
	assertHand := func(t *testing.T, cards string, expected Hand) {
		t.Helper()

		assert.Equal(t, expected, analyze(t, cards).GetHand())
	}

	assertHand(t, "14s,13s,12s,11s,10s", RoyalFlush)
	assertHand(t, "13s,12s,11s,10s,9s", StraightFlush)
	assertHand(t, "14s,5s,4s,3s,2s", StraightFlush) // steel wheel
	assertHand(t, "9s,9c,9d,9h,2s", FourOfAKind)
	assertHand(t, "9s,9c,9d,2h,2s", FullHouse)
	assertHand(t, "14s,11s,9s,5s,2s", Flush)
	assertHand(t, "10s,9c,8d,7h,6s", Straight)
	assertHand(t, "14s,5c,4d,3h,2s", Straight) // wheel
	assertHand(t, "9s,9c,9d,5h,2s", ThreeOfAKind)
	assertHand(t, "9s,9c,5d,5h,2s", TwoPair)
	assertHand(t, "9s,9c,7d,5h,2s", OnePair)
	assertHand(t, "13s,11c,9d,5h,2s", HighCard)
}

func TestHandAnalyzer_categoryOrder(t *testing.T) {
	a := assert.New(t)

	// weakest representative of each category, ascending
	hands := []string{
		"7s,5c,4d,3h,2s",       // high card
		"3s,2c,2d,5h,4s",       // pair
		"3s,3c,2d,2h,4s",       // two pair
		"2s,2c,2d,5h,4s",       // trips
		"14s,5c,4d,3h,2s",      // wheel straight
		"7s,5s,4s,3s,2s",       // flush
		"2s,2c,2d,3h,3s",       // full house
		"2s,2c,2d,2h,3s",       // quads
		"14s,5s,4s,3s,2s",      // steel wheel
		"14s,13s,12s,11s,10s",  // royal flush
	}

	prev := 0
	for _, cards := range hands {
		strength := analyze(t, cards).GetStrength()
		a.Greater(strength, prev, cards)
		prev = strength
	}
}

func TestHandAnalyzer_permutationInvariance(t *testing.T) {
	a := assert.New(t)

	cards := deck.CardsFromString("14s,13s,9c,9d,5h,13h,2c")
	h, err := New(cards)
	a.NoError(err)
	expected := h.GetStrength()

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 25; i++ {
		shuffled := make([]*deck.Card, len(cards))
		copy(shuffled, cards)
		r.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		h, err := New(shuffled)
		a.NoError(err)
		a.Equal(expected, h.GetStrength())
	}
}

func TestHandAnalyzer_wheel(t *testing.T) {
	a := assert.New(t)

	wheel := analyze(t, "14s,5c,4d,3h,2s")
	a.Equal(Straight, wheel.GetHand())

	high, ok := wheel.GetStraight()
	a.True(ok)
	a.Equal(5, high)

	sixHigh := analyze(t, "6s,5c,4d,3h,2s")
	a.Equal(1, Compare(sixHigh, wheel))
	a.Equal(-1, Compare(wheel, sixHigh))
}

func TestHandAnalyzer_bestFiveOfSeven(t *testing.T) {
	a := assert.New(t)

	// two hearts in the hole plus three on the board make a flush
	h := analyze(t, "14h,13h,9h,8h,2h,9c,9d")
	a.Equal(Flush, h.GetHand())

	flush, ok := h.GetFlush()
	a.True(ok)
	a.Equal([]int{14, 13, 9, 8, 2}, flush)

	// board plays: the pair in the hole is ignored
	h = analyze(t, "12h,11h,10h,13h,14h,2c,2d")
	a.Equal(RoyalFlush, h.GetHand())
}

func TestHandAnalyzer_kickers(t *testing.T) {
	a := assert.New(t)

	// same pair, better kicker wins
	better := analyze(t, "9s,9c,14d,5h,2s")
	worse := analyze(t, "9h,9d,13d,5c,2c")
	a.Equal(1, Compare(better, worse))

	// identical hands tie
	a.Equal(0, Compare(better, analyze(t, "9h,9d,14c,5c,2c")))

	// quads compare on the kicker
	a.Equal(1, Compare(analyze(t, "9s,9c,9d,9h,14s"), analyze(t, "9s,9c,9d,9h,13s")))
}

func TestHandAnalyzer_fullHouse(t *testing.T) {
	a := assert.New(t)

	h := analyze(t, "14s,14c,14d,13h,13s")
	fh, ok := h.GetFullHouse()
	a.True(ok)
	a.Equal([]int{14, 13}, fh)

	// trips decide before the pair
	a.Equal(1, Compare(analyze(t, "9s,9c,9d,2h,2s"), analyze(t, "8s,8c,8d,14h,14s")))
}

func TestHandAnalyzer_compareProperties(t *testing.T) {
	a := assert.New(t)

	x := analyze(t, "14s,13s,12s,11s,10s")
	y := analyze(t, "9s,9c,9d,9h,2s")
	z := analyze(t, "13s,11c,9d,5h,2s")

	// antisymmetric
	a.Equal(1, Compare(x, y))
	a.Equal(-1, Compare(y, x))

	// transitive
	a.Equal(1, Compare(x, y))
	a.Equal(1, Compare(y, z))
	a.Equal(1, Compare(x, z))
}

func TestHandAnalyzer_Describe(t *testing.T) {
	assertDescribe := func(t *testing.T, cards, expected string) {
		t.Helper()

		assert.Equal(t, expected, analyze(t, cards).Describe())
	}

	assertDescribe(t, "14s,13s,12s,11s,10s", "Royal flush")
	assertDescribe(t, "13s,12s,11s,10s,9s", "Straight flush, king high")
	assertDescribe(t, "9s,9c,9d,9h,2s", "Four of a kind, nines")
	assertDescribe(t, "14s,14c,14d,13h,13s", "Full house, aces over kings")
	assertDescribe(t, "14s,11s,9s,5s,2s", "Flush, ace high")
	assertDescribe(t, "10s,9c,8d,7h,6s", "Straight, ten high")
	assertDescribe(t, "14s,5c,4d,3h,2s", "Straight, five high")
	assertDescribe(t, "12s,12c,12d,5h,2s", "Three of a kind, queens")
	assertDescribe(t, "13s,13c,9d,9h,2s", "Two pair, kings and nines")
	assertDescribe(t, "6s,6c,7d,5h,2s", "Pair of sixes")
	assertDescribe(t, "13s,11c,9d,5h,2s", "High card, king")
}
