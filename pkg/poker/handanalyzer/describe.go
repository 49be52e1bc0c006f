package handanalyzer

import (
	"fmt"

	"headsuppoker-server/pkg/deck"
)

// Describe returns a human-readable description of the hand
// with its principal rank(s), i.e., "Full house, aces over kings"
func (h *HandAnalyzer) Describe() string {
	switch h.hand {
	case RoyalFlush:
		return "Royal flush"
	case StraightFlush:
		high, _ := h.GetStraightFlush()
		return fmt.Sprintf("Straight flush, %s high", deck.RankName(high))
	case FourOfAKind:
		quads, _ := h.GetFourOfAKind()
		return fmt.Sprintf("Four of a kind, %s", pluralRank(quads))
	case FullHouse:
		fh, _ := h.GetFullHouse()
		return fmt.Sprintf("Full house, %s over %s", pluralRank(fh[0]), pluralRank(fh[1]))
	case Flush:
		f, _ := h.GetFlush()
		return fmt.Sprintf("Flush, %s high", deck.RankName(f[0]))
	case Straight:
		high, _ := h.GetStraight()
		return fmt.Sprintf("Straight, %s high", deck.RankName(high))
	case ThreeOfAKind:
		trips, _ := h.GetThreeOfAKind()
		return fmt.Sprintf("Three of a kind, %s", pluralRank(trips))
	case TwoPair:
		tp, _ := h.GetTwoPair()
		return fmt.Sprintf("Two pair, %s and %s", pluralRank(tp[0]), pluralRank(tp[1]))
	case OnePair:
		pair, _ := h.GetPair()
		return fmt.Sprintf("Pair of %s", pluralRank(pair))
	case HighCard:
		return fmt.Sprintf("High card, %s", deck.RankName(h.GetHighCard()[0]))
	}

	panic("unknown hand")
}

func pluralRank(rank int) string {
	if rank == 6 {
		return "sixes"
	}

	return deck.RankName(rank) + "s"
}
