package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeck(t *testing.T) {
	deck := New()

	assert.Equal(t, 52, deck.CardsLeft())
	assert.Equal(t, Card{Rank: 2, Suit: Clubs}, *deck.Cards[0])
	assert.Equal(t, Card{Rank: 14, Suit: Spades}, *deck.Cards[51])

	// the full 52 cards are unique
	seen := make(map[Card]bool)
	for _, card := range deck.Cards {
		seen[*card] = true
	}
	assert.Equal(t, 52, len(seen))

	hashCode := deck.HashCode()
	deck.Shuffle(1)
	assert.NotEqual(t, hashCode, deck.HashCode())
	assert.Equal(t, int64(1), deck.GetSeed())

	// same seed, same order
	deck2 := New()
	deck2.Shuffle(1)
	assert.Equal(t, deck.HashCode(), deck2.HashCode())

	deck2.Shuffle(2)
	assert.NotEqual(t, deck.HashCode(), deck2.HashCode())
}

func TestDeck_Draw(t *testing.T) {
	deck := New()

	if !deck.CanDraw(52) {
		t.Errorf("expected CanDraw(52) to be true")
	}

	if deck.CanDraw(53) {
		t.Errorf("expected CanDraw(53) to be false")
	}

	for i := 0; i < 52; i++ {
		card, err := deck.Draw()
		if card == nil {
			t.Error("expected card, got nil")
		}

		if err != nil {
			t.Errorf("expected err to be nil, got %v", err)
		}
	}

	if deck.CanDraw(1) {
		t.Errorf("expected CanDraw(1) to be false")
	}

	card, err := deck.Draw()
	if card != nil {
		t.Errorf("expected card to be nil, got %#v", card)
	}

	if err != ErrEndOfDeck {
		t.Errorf("expected err to be ErrEndOfDeck, got %#v", err)
	}

	deck.Shuffle(0)
	if !deck.CanDraw(52) {
		t.Errorf("expected Shuffle() to reshuffle the deck")
	}
}

func TestDeck_Deal(t *testing.T) {
	a := assert.New(t)

	deck := New()
	deck.Shuffle(1)

	cards, err := deck.Deal(2)
	a.NoError(err)
	a.Equal(2, len(cards))
	a.Equal(50, deck.CardsLeft())

	cards, err = deck.Deal(50)
	a.NoError(err)
	a.Equal(50, len(cards))
	a.Equal(0, deck.CardsLeft())

	cards, err = deck.Deal(1)
	a.Equal(ErrEndOfDeck, err)
	a.Nil(cards)
}

func TestDeck_Deal_underflowLeavesDeckUntouched(t *testing.T) {
	a := assert.New(t)

	deck := New()
	deck.Shuffle(1)

	_, err := deck.Deal(50)
	a.NoError(err)

	cards, err := deck.Deal(3)
	a.Equal(ErrEndOfDeck, err)
	a.Nil(cards)
	a.Equal(2, deck.CardsLeft())
}
