package holdem

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"headsuppoker-server/pkg/deck"
	"headsuppoker-server/pkg/poker/handanalyzer"
)

// Reason explains how a pot was decided
type Reason string

// reason constants
const (
	ReasonFold       Reason = "fold"
	ReasonTimeout    Reason = "timeout"
	ReasonShowdown   Reason = "showdown"
	ReasonSplit      Reason = "split"
	ReasonDisconnect Reason = "disconnect"
)

// Result describes the outcome of a hand
type Result struct {
	// WinnerID is -1 when the pot was split
	WinnerID   int
	WinnerName string
	Pot        int
	Reason     Reason
	// Revealed holds the hole cards of every seat that did not fold
	Revealed map[int]deck.Hand
	// Hands holds a description of each revealed seat's best hand, when
	// the hand went to showdown
	Hands map[int]string
}

// NextPhase reveals the next community cards and resets the round: flop
// deals three cards, turn and river one each. Per-round bets and the current
// bet are cleared, and the non-dealer acts first.
// Returns the newly revealed cards.
func (g *Game) NextPhase() ([]*deck.Card, error) {
	var count int
	switch g.phase {
	case PhasePreFlop:
		count = 3
	case PhaseFlop, PhaseTurn:
		count = 1
	case PhaseRiver:
		g.phase = PhaseShowdown
		return nil, nil
	default:
		return nil, fmt.Errorf("cannot advance from phase %s", g.phase)
	}

	cards, err := g.deck.Deal(count)
	if err != nil {
		return nil, err
	}

	for _, card := range cards {
		g.community.AddCard(card)
	}

	g.phase++
	g.currentBet = 0
	g.activeSeat = 1 - g.dealerButton
	g.actedSinceRaise = [2]bool{}

	for _, seat := range g.seats {
		seat.newRound()
	}

	g.logger.WithFields(logrus.Fields{
		"phase":     g.phase.String(),
		"community": g.community.String(),
	}).Info("community cards revealed")

	return cards, nil
}

// Showdown compares the live seats' best five-card hands and awards the pot.
// With a single live seat it wins by default; equal hands split the pot.
func (g *Game) Showdown() (*Result, error) {
	live := g.liveSeats()
	if len(live) == 0 {
		return nil, errors.New("no live seats at showdown")
	}

	g.phase = PhaseShowdown

	if len(live) == 1 {
		return g.AwardPot(live[0].ID, ReasonShowdown), nil
	}

	hands := make(map[int]*handanalyzer.HandAnalyzer, len(live))
	descriptions := make(map[int]string, len(live))
	for _, seat := range live {
		cards := append(append([]*deck.Card{}, seat.cards...), g.community...)
		h, err := handanalyzer.New(cards)
		if err != nil {
			return nil, err
		}

		hands[seat.ID] = h
		descriptions[seat.ID] = h.Describe()

		g.logger.WithFields(logrus.Fields{
			"seat": seat.ID,
			"hand": h.Describe(),
		}).Info("showdown hand")
	}

	var result *Result
	switch handanalyzer.Compare(hands[live[0].ID], hands[live[1].ID]) {
	case 1:
		result = g.AwardPot(live[0].ID, ReasonShowdown)
	case -1:
		result = g.AwardPot(live[1].ID, ReasonShowdown)
	default:
		result = g.splitPot()
	}

	result.Hands = descriptions
	return result, nil
}

// AwardPot gives the whole pot to the winner, increments their hands-won
// stat, and zeroes the pot
func (g *Game) AwardPot(winnerID int, reason Reason) *Result {
	winner := g.seats[winnerID]
	pot := g.pot

	winner.chips += pot
	winner.stats.HandsWon++
	g.pot = 0

	g.logger.WithFields(logrus.Fields{
		"winner": winnerID,
		"pot":    pot,
		"reason": reason,
	}).Info("pot awarded")

	return &Result{
		WinnerID:   winnerID,
		WinnerName: winner.name,
		Pot:        pot,
		Reason:     reason,
		Revealed:   g.revealedCards(),
	}
}

// splitPot divides the pot evenly between both seats on a tie. Integer
// division applies; an odd chip is not awarded to either seat. Both seats'
// hands-won stats are incremented.
func (g *Game) splitPot() *Result {
	pot := g.pot
	share := pot / 2

	for _, seat := range g.seats {
		seat.chips += share
		seat.stats.HandsWon++
	}

	g.pot = 0

	g.logger.WithFields(logrus.Fields{
		"pot":   pot,
		"share": share,
	}).Info("pot split")

	return &Result{
		WinnerID:   -1,
		WinnerName: "Draw",
		Pot:        pot,
		Reason:     ReasonSplit,
		Revealed:   g.revealedCards(),
	}
}

// revealedCards returns the hole cards of every seat that did not fold
func (g *Game) revealedCards() map[int]deck.Hand {
	revealed := make(map[int]deck.Hand)
	for _, seat := range g.seats {
		if !seat.folded {
			revealed[seat.ID] = seat.cards.Clone()
		}
	}

	return revealed
}
