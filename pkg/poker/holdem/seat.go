package holdem

import (
	"headsuppoker-server/pkg/deck"
)

// Stats are a seat's per-session statistics
type Stats struct {
	HandsPlayed int
	HandsWon    int
}

// Seat represents one of the two players at the table
type Seat struct {
	ID int

	name   string
	chips  int
	cards  deck.Hand
	bet    int
	folded bool
	allIn  bool
	stats  Stats
}

func newSeat(id int, name string, chips int) *Seat {
	return &Seat{
		ID:    id,
		name:  name,
		chips: chips,
	}
}

// newHand resets the seat's per-hand state
func (s *Seat) newHand() {
	s.cards = make(deck.Hand, 0, 2)
	s.bet = 0
	s.folded = false
	s.allIn = false
	s.stats.HandsPlayed++
}

// newRound resets the seat's per-round bet
func (s *Seat) newRound() {
	s.bet = 0
}

// contribute moves up to amount chips from the seat's stack to its bet,
// returning the amount actually moved. The seat is all-in when its stack
// reaches zero.
func (s *Seat) contribute(amount int) int {
	if amount > s.chips {
		amount = s.chips
	}

	s.chips -= amount
	s.bet += amount

	if s.chips == 0 {
		s.allIn = true
	}

	return amount
}

// Name returns the seat's display name
func (s *Seat) Name() string {
	return s.name
}

// Chips returns the seat's chip stack
func (s *Seat) Chips() int {
	return s.chips
}

// Bet returns the seat's current-round contribution
func (s *Seat) Bet() int {
	return s.bet
}

// Folded returns true if the seat folded this hand
func (s *Seat) Folded() bool {
	return s.folded
}

// AllIn returns true if the seat has committed its entire stack
func (s *Seat) AllIn() bool {
	return s.allIn
}

// Stats returns the seat's session statistics
func (s *Seat) Stats() Stats {
	return s.stats
}

// HoleCards returns the seat's private cards
func (s *Seat) HoleCards() deck.Hand {
	return s.cards
}

// canAct returns true if the seat may still act this round
func (s *Seat) canAct() bool {
	return !s.folded && !s.allIn
}
