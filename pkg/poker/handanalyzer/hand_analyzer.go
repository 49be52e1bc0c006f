package handanalyzer

import (
	"errors"
	"math"
	"sort"

	"headsuppoker-server/pkg/deck"
)

// ErrTooFewCards is an error when fewer than five cards are analyzed
var ErrTooFewCards = errors.New("a hand requires at least five cards")

// ErrTooManyCards is an error when more than seven cards are analyzed
var ErrTooManyCards = errors.New("a hand cannot exceed seven cards")

// HandAnalyzer determines the best five-card hand the supplied cards can make
type HandAnalyzer struct {
	cards deck.Hand

	flush         []int
	quads         []int
	trips         []int
	pairs         []int
	straightFlush int
	straight      int

	hand     Hand
	strength int
}

// New will return a new HandAnalyzer instance
// Between five and seven cards must be supplied. With more than five cards,
// every five-card combination is analyzed and the strongest is kept.
func New(cards []*deck.Card) (*HandAnalyzer, error) {
	if len(cards) < 5 {
		return nil, ErrTooFewCards
	}

	if len(cards) > 7 {
		return nil, ErrTooManyCards
	}

	if len(cards) == 5 {
		return newFiveCard(cards), nil
	}

	var best *HandAnalyzer
	eachFiveCardCombo(cards, func(combo []*deck.Card) {
		h := newFiveCard(combo)
		if best == nil || h.GetStrength() > best.GetStrength() {
			best = h
		}
	})

	return best, nil
}

// newFiveCard analyzes exactly five cards
func newFiveCard(cards []*deck.Card) *HandAnalyzer {
	// clone to prevent modifying original
	sortedCards := make(deck.Hand, len(cards))
	copy(sortedCards, cards)
	sort.Sort(sort.Reverse(sortByRank(sortedCards)))

	h := &HandAnalyzer{
		cards: sortedCards,
	}

	h.analyzeHand()
	h.calculateHand()
	return h
}

// eachFiveCardCombo calls fn with every five-card combination of cards
func eachFiveCardCombo(cards []*deck.Card, fn func(combo []*deck.Card)) {
	n := len(cards)
	combo := make([]*deck.Card, 5)

	var rec func(start, k int)
	rec = func(start, k int) {
		if k == 5 {
			fn(combo)
			return
		}

		for i := start; i <= n-(5-k); i++ {
			combo[k] = cards[i]
			rec(i+1, k+1)
		}
	}

	rec(0, 0)
}

// analyzeHand will loop through the five cards and calculate the various combinations
// This is required to be called in order for the public Get*() methods to return properly
func (h *HandAnalyzer) analyzeHand() {
	h.checkFlush()
	h.straight = straightHighCard(h.cards)
	if h.flush != nil && h.straight > 0 {
		h.straightFlush = h.straight
	}

	// keeps track of pairs, trips, and quads
	prevRank := math.MaxInt8
	numOfRank := 1

	nCards := len(h.cards)
	for i, card := range h.cards {
		isLastCard := i+1 == nCards
		h.checkPairs(card, isLastCard, &prevRank, &numOfRank)
	}
}

func (h *HandAnalyzer) checkFlush() {
	suit := h.cards[0].Suit
	for _, card := range h.cards[1:] {
		if card.Suit != suit {
			return
		}
	}

	ranks := make([]int, len(h.cards))
	for i, card := range h.cards {
		ranks[i] = card.Rank
	}

	h.flush = ranks
}

// straightHighCard returns the high card of a straight, or 0 if the cards
// do not form one. The cards must be sorted by rank, descending.
// A wheel (A-2-3-4-5) is a straight with a high card of five.
func straightHighCard(cards deck.Hand) int {
	for i := 1; i < len(cards); i++ {
		if cards[i].Rank != cards[i-1].Rank-1 {
			// ace may still play low
			if i == 1 && cards[0].Rank == deck.Ace && cards[1].Rank == 5 {
				continue
			}

			return 0
		}
	}

	if cards[0].Rank == deck.Ace && cards[1].Rank == 5 {
		return 5
	}

	return cards[0].Rank
}

func (h *HandAnalyzer) checkPairs(card *deck.Card, isLastCard bool, prevRank, numOfRank *int) {
	if card.Rank == *prevRank {
		*numOfRank++
	}

	// if the card is no longer the same rank, or we're at the end
	// check the longest group of cards we can form
	if card.Rank != *prevRank || isLastCard {
		// make sure this isn't the first card
		if *prevRank != math.MaxInt8 || isLastCard {
			switch *numOfRank {
			case 4:
				h.quads = append(h.quads, *prevRank)
			case 3:
				h.trips = append(h.trips, *prevRank)
			case 2:
				h.pairs = append(h.pairs, *prevRank)
			}
		}

		// reset back to 1 since we changed rank
		*numOfRank = 1
	}

	*prevRank = card.Rank
}

// GetHand will return the best possible hand the cards can make
func (h *HandAnalyzer) GetHand() Hand {
	return h.hand
}

// GetRoyalFlush will return true if there's a royal flush
func (h *HandAnalyzer) GetRoyalFlush() bool {
	return h.straightFlush == deck.Ace
}

// GetStraightFlush will return the high card of a straight flush, if possible
func (h *HandAnalyzer) GetStraightFlush() (int, bool) {
	if h.straightFlush > 0 {
		return h.straightFlush, true
	}

	return 0, false
}

// GetFourOfAKind will return the best four of a kind, if possible
func (h *HandAnalyzer) GetFourOfAKind() (int, bool) {
	if len(h.quads) > 0 {
		return h.quads[0], true
	}

	return 0, false
}

// GetFullHouse will return the trips and pair of a full house, if possible
func (h *HandAnalyzer) GetFullHouse() ([]int, bool) {
	if len(h.trips) > 0 && len(h.pairs) > 0 {
		return []int{h.trips[0], h.pairs[0]}, true
	}

	return nil, false
}

// GetFlush will return the best possible flush, if possible
func (h *HandAnalyzer) GetFlush() ([]int, bool) {
	if h.flush != nil {
		return h.flush, true
	}

	return nil, false
}

// GetStraight will return the best straight, if possible
func (h *HandAnalyzer) GetStraight() (int, bool) {
	if h.straight > 0 {
		return h.straight, true
	}

	return 0, false
}

// GetThreeOfAKind will return the best three of a kind, if possible
func (h *HandAnalyzer) GetThreeOfAKind() (int, bool) {
	if len(h.trips) > 0 {
		return h.trips[0], true
	}

	return 0, false
}

// GetTwoPair will return the best two pairs, if possible
func (h *HandAnalyzer) GetTwoPair() ([]int, bool) {
	if len(h.pairs) >= 2 {
		return h.pairs[0:2], true
	}

	return nil, false
}

// GetPair will return the best pair, if possible
func (h *HandAnalyzer) GetPair() (int, bool) {
	if len(h.pairs) > 0 {
		return h.pairs[0], true
	}

	return 0, false
}

// GetHighCard will return the ranks of all five cards, descending
func (h *HandAnalyzer) GetHighCard() []int {
	cards := make([]int, len(h.cards))
	for i, card := range h.cards {
		cards[i] = card.Rank
	}

	return cards
}

func calculateStrength(hand Hand, cards []int) int {
	fiveCards := make([]int, 5)
	copy(fiveCards, cards)

	strength := math.Pow(15, 5) * float64(hand)
	for i := 0; i < 5; i++ {
		val := fiveCards[4-i]
		strength += math.Pow(15, float64(i)) * float64(val)
	}

	return int(strength)
}

// GetStrength returns the strength of the hand
// A stronger hand always has a greater strength. Equal hands have equal
// strengths regardless of the order the cards were supplied in.
func (h *HandAnalyzer) GetStrength() int {
	if h.strength > 0 {
		return h.strength
	}

	h.strength = h.getStrength()
	return h.strength
}

func (h *HandAnalyzer) getStrength() int {
	hand := h.GetHand()

	switch hand {
	case HighCard:
		return calculateStrength(hand, h.GetHighCard())
	case OnePair:
		pair, _ := h.GetPair()
		return calculateStrength(hand, append([]int{pair}, h.kickers(pair)...))
	case TwoPair:
		twoPair, _ := h.GetTwoPair()
		kickers := h.kickers(twoPair[0], twoPair[1])
		return calculateStrength(hand, []int{twoPair[0], twoPair[1], kickers[0]})
	case ThreeOfAKind:
		trips, _ := h.GetThreeOfAKind()
		return calculateStrength(hand, append([]int{trips}, h.kickers(trips)...))
	case Straight:
		s, _ := h.GetStraight()
		return calculateStrength(hand, []int{s})
	case Flush:
		f, _ := h.GetFlush()
		return calculateStrength(hand, f)
	case FullHouse:
		fh, _ := h.GetFullHouse()
		return calculateStrength(hand, fh)
	case FourOfAKind:
		fk, _ := h.GetFourOfAKind()
		return calculateStrength(hand, append([]int{fk}, h.kickers(fk)...))
	case StraightFlush:
		s, _ := h.GetStraightFlush()
		return calculateStrength(hand, []int{s})
	case RoyalFlush:
		return calculateStrength(hand, []int{})
	}

	panic("unknown hand")
}

// kickers returns the ranks of cards not part of the made hand, descending
func (h *HandAnalyzer) kickers(exclude ...int) []int {
	excluded := make(map[int]bool, len(exclude))
	for _, rank := range exclude {
		excluded[rank] = true
	}

	kickers := make([]int, 0, len(h.cards))
	for _, card := range h.cards {
		if excluded[card.Rank] {
			continue
		}

		kickers = append(kickers, card.Rank)
	}

	return kickers
}

// Compare returns 1 if a beats b, -1 if b beats a, and 0 on a tie
func Compare(a, b *HandAnalyzer) int {
	switch {
	case a.GetStrength() > b.GetStrength():
		return 1
	case a.GetStrength() < b.GetStrength():
		return -1
	}

	return 0
}

// calculateHand will determine the best hand
// This must be called after analyzeHand() has been called
func (h *HandAnalyzer) calculateHand() {
	if h.GetRoyalFlush() {
		h.hand = RoyalFlush
	} else if _, ok := h.GetStraightFlush(); ok {
		h.hand = StraightFlush
	} else if _, ok := h.GetFourOfAKind(); ok {
		h.hand = FourOfAKind
	} else if _, ok := h.GetFullHouse(); ok {
		h.hand = FullHouse
	} else if _, ok := h.GetFlush(); ok {
		h.hand = Flush
	} else if _, ok := h.GetStraight(); ok {
		h.hand = Straight
	} else if _, ok := h.GetThreeOfAKind(); ok {
		h.hand = ThreeOfAKind
	} else if _, ok := h.GetTwoPair(); ok {
		h.hand = TwoPair
	} else if _, ok := h.GetPair(); ok {
		h.hand = OnePair
	} else {
		h.hand = HighCard
	}
}

type sortByRank deck.Hand

func (s sortByRank) Len() int {
	return len(s)
}

func (s sortByRank) Less(i, j int) bool {
	return s[i].Rank < s[j].Rank
}

func (s sortByRank) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
