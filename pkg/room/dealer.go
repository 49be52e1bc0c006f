package room

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"headsuppoker-server/pkg/deck"
	"headsuppoker-server/pkg/poker/action"
	"headsuppoker-server/pkg/poker/holdem"
	"headsuppoker-server/pkg/wire"
)

// Dealer runs a match between the two seated players. All play is strictly
// sequential: the dealer prompts one seat at a time and blocks on its answer
// with a bounded timeout, so the game state never sees concurrent mutation.
type Dealer struct {
	registry        *Registry
	game            *holdem.Game
	logger          logrus.FieldLogger
	turnTimeout     time.Duration
	continueTimeout time.Duration
}

// NewDealer creates a dealer for the seated players
func NewDealer(logger logrus.FieldLogger, registry *Registry, opts holdem.Options, turnTimeout, continueTimeout time.Duration) (*Dealer, error) {
	game, err := holdem.NewGame(logger, registry.Names(), opts)
	if err != nil {
		return nil, err
	}

	return &Dealer{
		registry:        registry,
		game:            game,
		logger:          logger,
		turnTimeout:     turnTimeout,
		continueTimeout: continueTimeout,
	}, nil
}

// Run plays hands until a seat goes bankrupt, a player declines to continue,
// or a connection drops. The match outcome is handled internally; a non-nil
// return means an unrecoverable internal failure.
func (d *Dealer) Run() error {
	defer d.registry.Close()

	for {
		if err := d.playHand(); err != nil {
			var disconnect *DisconnectError
			if errors.As(err, &disconnect) {
				d.handleDisconnect(disconnect.Seat)
				return nil
			}

			return err
		}

		// bankruptcy ends the match before anyone is asked to continue
		if winner, ok := d.bankruptWinner(); ok {
			d.logger.WithField("winner", winner.Name()).Info("match won by bankruptcy")
			d.announce(wire.GameOver{
				Winner:  winner.Name(),
				Message: fmt.Sprintf("%s has won the match!", winner.Name()),
			})
			return nil
		}

		cont, err := d.askContinue()
		if err != nil {
			var disconnect *DisconnectError
			if errors.As(err, &disconnect) {
				d.handleDisconnect(disconnect.Seat)
				return nil
			}

			return err
		}

		if !cont {
			d.logger.Info("match ended by player choice")
			return nil
		}
	}
}

// playHand runs a single hand from shuffle to pot award
func (d *Dealer) playHand() error {
	if err := d.game.StartHand(); err != nil {
		return err
	}

	for _, seat := range d.game.Seats() {
		err := d.registry.Client(seat.ID).Send(wire.Deal{
			Cards:        seat.HoleCards(),
			DealerButton: d.game.DealerButton(),
		})
		if err != nil {
			return &DisconnectError{Seat: seat.ID, Err: err}
		}
	}

	if err := d.broadcastState(); err != nil {
		return err
	}

	for {
		handOver, err := d.bettingRound()
		if err != nil {
			return err
		}

		if handOver {
			return nil
		}

		if _, err := d.game.NextPhase(); err != nil {
			return err
		}

		if d.game.Phase() == holdem.PhaseShowdown {
			result, err := d.game.Showdown()
			if err != nil {
				return err
			}

			return d.announceResult(result)
		}

		if err := d.broadcastState(); err != nil {
			return err
		}
	}
}

// bettingRound collects actions until the round is settled. It returns true
// when a fold ended the hand early.
func (d *Dealer) bettingRound() (bool, error) {
	for !d.game.RoundComplete() {
		seat, err := d.game.CurrentTurn()
		if err != nil {
			return false, err
		}

		handOver, err := d.promptTurn(seat)
		if err != nil {
			return false, err
		}

		if handOver {
			return true, nil
		}
	}

	return false, nil
}

// promptTurn asks one seat to act and applies the answer. Illegal or
// malformed submissions get a directed error and a fresh prompt; the round
// does not advance. A timeout forces a fold.
func (d *Dealer) promptTurn(seat *holdem.Seat) (bool, error) {
	client := d.registry.Client(seat.ID)

	for {
		if err := client.Send(wire.YourTurn{}); err != nil {
			return false, &DisconnectError{Seat: seat.ID, Err: err}
		}

		msg, err := client.Receive(d.turnTimeout)
		if errors.Is(err, ErrReceiveTimeout) {
			return d.timeoutFold(seat)
		}

		if errors.Is(err, ErrConnectionClosed) {
			return false, &DisconnectError{Seat: seat.ID, Err: err}
		}

		if err != nil {
			if err := d.sendError(seat.ID, err.Error()); err != nil {
				return false, err
			}
			continue
		}

		turn, ok := msg.(wire.Turn)
		if !ok {
			if err := d.sendError(seat.ID, "expected a turn action"); err != nil {
				return false, err
			}
			continue
		}

		act, err := action.FromString(turn.Action)
		if err != nil {
			if err := d.sendError(seat.ID, err.Error()); err != nil {
				return false, err
			}
			continue
		}

		log, err := d.game.Apply(seat.ID, act, turn.Amount)
		if holdem.IsRuleError(err) {
			if err := d.sendError(seat.ID, err.Error()); err != nil {
				return false, err
			}
			continue
		} else if err != nil {
			return false, err
		}

		if err := d.announceAction(log); err != nil {
			return false, err
		}

		if winner, ok := d.game.FoldWinner(); ok {
			result := d.game.AwardPot(winner.ID, holdem.ReasonFold)
			return true, d.announceResult(result)
		}

		return false, nil
	}
}

// timeoutFold folds the seat that ran out of time
func (d *Dealer) timeoutFold(seat *holdem.Seat) (bool, error) {
	d.logger.WithField("seat", seat.ID).Info("turn timed out")

	log := d.game.ForceFold(seat.ID, holdem.ReasonTimeout)
	if log == nil {
		return false, nil
	}

	if err := d.announceAction(log); err != nil {
		return false, err
	}

	if winner, ok := d.game.FoldWinner(); ok {
		result := d.game.AwardPot(winner.ID, holdem.ReasonTimeout)
		return true, d.announceResult(result)
	}

	return false, nil
}

// askContinue prompts both seats for another hand. A timeout or anything
// other than an affirmative answer counts as a decline.
func (d *Dealer) askContinue() (bool, error) {
	if err := d.broadcast(wire.AskContinue{}); err != nil {
		return false, err
	}

	both := true
	for _, seat := range d.game.Seats() {
		msg, err := d.registry.Client(seat.ID).Receive(d.continueTimeout)
		if errors.Is(err, ErrReceiveTimeout) {
			both = false
			continue
		}

		if errors.Is(err, ErrConnectionClosed) {
			return false, &DisconnectError{Seat: seat.ID, Err: err}
		}

		if err != nil {
			both = false
			continue
		}

		answer, ok := msg.(wire.Continue)
		if !ok || !answer.Continue {
			both = false
		}
	}

	return both, nil
}

// handleDisconnect awards any live pot to the surviving seat and declares the
// match won by forfeit
func (d *Dealer) handleDisconnect(seatID int) {
	survivor := d.game.Seat(1 - seatID)
	gone := d.game.Seat(seatID)

	d.logger.WithFields(logrus.Fields{
		"seat":     seatID,
		"survivor": survivor.Name(),
	}).Info("player disconnected, match forfeited")

	if d.game.Pot() > 0 {
		result := d.game.AwardPot(survivor.ID, holdem.ReasonDisconnect)
		_ = d.registry.Client(survivor.ID).Send(d.resultMessage(result))
	}

	_ = d.registry.Client(survivor.ID).Send(wire.GameOver{
		Winner:  survivor.Name(),
		Message: fmt.Sprintf("%s disconnected. %s wins by forfeit.", gone.Name(), survivor.Name()),
	})
}

// bankruptWinner reports whether a seat is out of chips, returning the other
// seat as the match winner
func (d *Dealer) bankruptWinner() (*holdem.Seat, bool) {
	for _, seat := range d.game.Seats() {
		if seat.Chips() <= 0 {
			return d.game.Seat(1 - seat.ID), true
		}
	}

	return nil, false
}

// announceAction broadcasts an accepted action followed by the updated state
func (d *Dealer) announceAction(log *holdem.ActionLog) error {
	err := d.broadcast(wire.PlayerAction{
		PlayerID:   log.SeatID,
		PlayerName: log.SeatName,
		Action:     log.Action,
		Amount:     log.Amount,
		Message:    log.Message,
	})
	if err != nil {
		return err
	}

	return d.broadcastState()
}

// announceResult broadcasts the hand outcome followed by the updated state
func (d *Dealer) announceResult(result *holdem.Result) error {
	if err := d.broadcast(d.resultMessage(result)); err != nil {
		return err
	}

	return d.broadcastState()
}

func (d *Dealer) resultMessage(result *holdem.Result) wire.HandResult {
	allCards := make(map[int][]*deck.Card, len(result.Revealed))
	for id, hand := range result.Revealed {
		allCards[id] = hand
	}

	stats := make(map[int]wire.Stats)
	for _, seat := range d.game.Seats() {
		stats[seat.ID] = wire.Stats{
			HandsPlayed: seat.Stats().HandsPlayed,
			HandsWon:    seat.Stats().HandsWon,
		}
	}

	return wire.HandResult{
		WinnerID:   result.WinnerID,
		WinnerName: result.WinnerName,
		Pot:        result.Pot,
		Reason:     string(result.Reason),
		AllCards:   allCards,
		Stats:      stats,
	}
}

// broadcastState sends each seat its own view of the public state
func (d *Dealer) broadcastState() error {
	players := make(map[int]wire.PlayerState, 2)
	for _, seat := range d.game.Seats() {
		players[seat.ID] = wire.PlayerState{
			Name:   seat.Name(),
			Chips:  seat.Chips(),
			Bet:    seat.Bet(),
			Folded: seat.Folded(),
			AllIn:  seat.AllIn(),
			Stats: wire.Stats{
				HandsPlayed: seat.Stats().HandsPlayed,
				HandsWon:    seat.Stats().HandsWon,
			},
		}
	}

	state := wire.GameState{
		Phase:          d.game.Phase().String(),
		Pot:            d.game.Pot(),
		CommunityCards: d.game.Community(),
		CurrentBet:     d.game.CurrentBet(),
		Players:        players,
		ActivePlayer:   d.game.ActiveSeat(),
		DealerButton:   d.game.DealerButton(),
	}

	for _, seat := range d.game.Seats() {
		state.YourID = seat.ID
		if err := d.registry.Client(seat.ID).Send(state); err != nil {
			return &DisconnectError{Seat: seat.ID, Err: err}
		}
	}

	return nil
}

// broadcast sends a message to both seats
func (d *Dealer) broadcast(msg wire.ServerMessage) error {
	for _, seat := range d.game.Seats() {
		if err := d.registry.Client(seat.ID).Send(msg); err != nil {
			return &DisconnectError{Seat: seat.ID, Err: err}
		}
	}

	return nil
}

// announce sends a message to both seats, ignoring delivery failures. Used
// for terminal messages where the match is already decided.
func (d *Dealer) announce(msg wire.ServerMessage) {
	for _, seat := range d.game.Seats() {
		_ = d.registry.Client(seat.ID).Send(msg)
	}
}

// sendError reports a protocol violation to the offending seat
func (d *Dealer) sendError(seatID int, message string) error {
	if err := d.registry.Client(seatID).Send(wire.Error{Message: message}); err != nil {
		return &DisconnectError{Seat: seatID, Err: err}
	}

	return nil
}
