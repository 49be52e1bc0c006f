package holdem

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"headsuppoker-server/internal/rng"
	"headsuppoker-server/pkg/deck"
)

// ErrNotInBettingRound is an error when a turn is requested outside a betting round
var ErrNotInBettingRound = errors.New("not in a betting round")

// Options configures how heads-up Hold'em is played
type Options struct {
	SmallBlind    int
	BigBlind      int
	StartingChips int
}

// DefaultOptions returns the default options for heads-up Hold'em
func DefaultOptions() Options {
	return Options{
		SmallBlind:    5,
		BigBlind:      10,
		StartingChips: 1000,
	}
}

func validateOptions(opts Options) error {
	if opts.SmallBlind <= 0 {
		return errors.New("small blind must be > 0")
	}

	if opts.BigBlind <= opts.SmallBlind {
		return errors.New("big blind must be greater than the small blind")
	}

	if opts.StartingChips < opts.BigBlind {
		return errors.New("starting chips must cover the big blind")
	}

	return nil
}

// Game is a heads-up game of No-Limit Texas Hold'em.
// The game is the single source of truth for match state. It performs no IO;
// the caller prompts for actions and feeds them in through Apply.
type Game struct {
	options Options
	logger  logrus.FieldLogger
	seats   [2]*Seat

	deck         *deck.Deck
	community    deck.Hand
	phase        Phase
	pot          int
	currentBet   int
	dealerButton int
	activeSeat   int

	// actedSinceRaise tracks whether each seat has acted since the last raise
	actedSinceRaise [2]bool

	handNum int
}

// NewGame returns a new game with both seats at their starting stacks
func NewGame(logger logrus.FieldLogger, names [2]string, opts Options) (*Game, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("seat %d has no name", i)
		}
	}

	g := &Game{
		options: opts,
		logger:  logger.WithField("match", uuid.New().String()),
		phase:   PhaseWaiting,
		// flipped to seat 0 when the first hand starts
		dealerButton: 1,
	}

	for i := range g.seats {
		g.seats[i] = newSeat(i, names[i], opts.StartingChips)
	}

	return g, nil
}

// StartHand prepares and deals a new hand: fresh shuffled deck, per-hand
// state reset, dealer button flipped, two hole cards per seat, blinds posted.
// The dealer (small blind) acts first pre-flop.
func (g *Game) StartHand() error {
	g.handNum++

	d := deck.New()
	d.Shuffle(rng.Seed())
	g.deck = d

	g.community = make(deck.Hand, 0, 5)
	g.pot = 0
	g.currentBet = 0
	g.phase = PhasePreFlop
	g.actedSinceRaise = [2]bool{}

	for _, seat := range g.seats {
		seat.newHand()
	}

	g.dealerButton = 1 - g.dealerButton

	for _, seat := range g.seats {
		cards, err := g.deck.Deal(2)
		if err != nil {
			return err
		}

		seat.cards = cards
	}

	g.postBlinds()

	g.logger.WithFields(logrus.Fields{
		"hand":   g.handNum,
		"dealer": g.dealerButton,
		"pot":    g.pot,
	}).Info("hand started")

	return nil
}

// postBlinds posts the forced bets. In heads-up play the dealer posts the
// small blind and acts first pre-flop; the other seat posts the big blind.
// Both blinds are capped by the available chips.
func (g *Game) postBlinds() {
	small := g.seats[g.dealerButton]
	big := g.seats[1-g.dealerButton]

	g.pot += small.contribute(g.options.SmallBlind)
	g.pot += big.contribute(g.options.BigBlind)

	// normally the big blind, but a short-stacked big blind may post less
	// than the dealer's small blind
	g.currentBet = big.bet
	if small.bet > g.currentBet {
		g.currentBet = small.bet
	}

	g.activeSeat = g.dealerButton
}

// InBettingRound returns true if the current phase is a betting round
func (g *Game) InBettingRound() bool {
	return g.phase >= PhasePreFlop && g.phase <= PhaseRiver
}

// CurrentTurn returns the seat that must act next.
// Seats that folded or are all-in are skipped. Returns an error outside a
// betting round or when no seat can act.
func (g *Game) CurrentTurn() (*Seat, error) {
	if !g.InBettingRound() {
		return nil, ErrNotInBettingRound
	}

	seat := g.seats[g.activeSeat]
	if seat.canAct() {
		return seat, nil
	}

	other := g.seats[1-g.activeSeat]
	if other.canAct() {
		return other, nil
	}

	return nil, errors.New("no seat can act")
}

// Phase returns the current phase of the hand
func (g *Game) Phase() Phase {
	return g.phase
}

// Pot returns the chips in the pot
func (g *Game) Pot() int {
	return g.pot
}

// CurrentBet returns the bet each live seat must match this round
func (g *Game) CurrentBet() int {
	return g.currentBet
}

// Community returns the community cards revealed so far
func (g *Game) Community() deck.Hand {
	return g.community
}

// DealerButton returns the seat currently holding the dealer button
func (g *Game) DealerButton() int {
	return g.dealerButton
}

// ActiveSeat returns the index of the seat whose turn it is
func (g *Game) ActiveSeat() int {
	if seat, err := g.CurrentTurn(); err == nil {
		return seat.ID
	}

	return g.activeSeat
}

// Seat returns the seat with the given id
func (g *Game) Seat(id int) *Seat {
	return g.seats[id]
}

// Seats returns both seats in id order
func (g *Game) Seats() []*Seat {
	return g.seats[:]
}

// Options returns the game options
func (g *Game) Options() Options {
	return g.options
}

// liveSeats returns the seats that have not folded
func (g *Game) liveSeats() []*Seat {
	live := make([]*Seat, 0, 2)
	for _, seat := range g.seats {
		if !seat.folded {
			live = append(live, seat)
		}
	}

	return live
}

// FoldWinner returns the remaining seat if the other seat folded
func (g *Game) FoldWinner() (*Seat, bool) {
	live := g.liveSeats()
	if len(live) == 1 {
		return live[0], true
	}

	return nil, false
}
