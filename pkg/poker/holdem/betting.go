package holdem

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"headsuppoker-server/pkg/poker/action"
)

// RuleError is a non-fatal error for an illegal action. The offending seat
// is told why and re-prompted; the round does not advance.
type RuleError struct {
	msg string
}

func (e *RuleError) Error() string {
	return e.msg
}

func newRuleError(format string, args ...interface{}) *RuleError {
	return &RuleError{msg: fmt.Sprintf(format, args...)}
}

// IsRuleError returns true if the error is a rule violation rather than an
// internal failure
func IsRuleError(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}

// ActionLog describes an accepted action for broadcast and logging
type ActionLog struct {
	SeatID   int
	SeatName string
	// Action is the wire name of what happened ("fold", "check", "call",
	// "raise", "all-in", "forced_fold")
	Action  string
	Amount  int
	Message string
}

// Apply performs an action for the seat whose turn it is.
// A *RuleError return means the action was illegal and the seat should be
// re-prompted; any other error is an internal failure.
func (g *Game) Apply(seatID int, act action.Action, amount int) (*ActionLog, error) {
	seat, err := g.CurrentTurn()
	if err != nil {
		return nil, err
	}

	if seat.ID != seatID {
		return nil, fmt.Errorf("seat %d acted out of turn", seatID)
	}

	toCall := g.currentBet - seat.bet

	var log *ActionLog
	switch act {
	case action.Fold:
		seat.folded = true
		log = &ActionLog{
			SeatID:   seat.ID,
			SeatName: seat.name,
			Action:   string(action.Fold),
			Message:  fmt.Sprintf("%s folded", seat.name),
		}
	case action.Check:
		if toCall > 0 {
			return nil, newRuleError("you cannot check, you must call or raise")
		}

		log = &ActionLog{
			SeatID:   seat.ID,
			SeatName: seat.name,
			Action:   string(action.Check),
			Message:  fmt.Sprintf("%s checked", seat.name),
		}
	case action.Call:
		called := seat.contribute(toCall)
		g.pot += called

		msg := fmt.Sprintf("%s called %d", seat.name, called)
		if seat.allIn {
			msg = fmt.Sprintf("%s called %d and is all-in", seat.name, called)
		}

		log = &ActionLog{
			SeatID:   seat.ID,
			SeatName: seat.name,
			Action:   string(action.Call),
			Amount:   called,
			Message:  msg,
		}
	case action.Raise:
		log, err = g.raise(seat, toCall, amount)
		if err != nil {
			return nil, err
		}
	default:
		return nil, newRuleError("%s is not a valid action", act)
	}

	g.actedSinceRaise[seat.ID] = true
	g.activeSeat = 1 - seat.ID

	g.logger.WithFields(logrus.Fields{
		"seat":   seat.ID,
		"action": log.Action,
		"amount": log.Amount,
		"pot":    g.pot,
	}).Info("action accepted")

	return log, nil
}

// raise moves amount chips from the seat's stack on top of its current bet.
// The minimum raise is max(currentBet*2 - bet, toCall + bigBlind); pushing
// the entire stack is always allowed, and a request beyond the stack is
// clamped to it.
func (g *Game) raise(seat *Seat, toCall, amount int) (*ActionLog, error) {
	minRaise := g.currentBet*2 - seat.bet
	if alt := toCall + g.options.BigBlind; alt > minRaise {
		minRaise = alt
	}

	if amount < minRaise && amount < seat.chips {
		return nil, newRuleError("the minimum raise is %d", minRaise)
	}

	moved := seat.contribute(amount)
	g.pot += moved

	if seat.bet > g.currentBet {
		g.currentBet = seat.bet
		// the opponent must react to the raise
		g.actedSinceRaise[1-seat.ID] = false
	}

	if seat.allIn {
		return &ActionLog{
			SeatID:   seat.ID,
			SeatName: seat.name,
			Action:   "all-in",
			Amount:   moved,
			Message:  fmt.Sprintf("%s is all-in with %d", seat.name, moved),
		}, nil
	}

	return &ActionLog{
		SeatID:   seat.ID,
		SeatName: seat.name,
		Action:   string(action.Raise),
		Amount:   moved,
		Message:  fmt.Sprintf("%s raised to %d", seat.name, seat.bet),
	}, nil
}

// ForceFold folds the seat without its cooperation (timeout or penalty).
// Calling it on an already-folded seat is a no-op and returns nil.
func (g *Game) ForceFold(seatID int, reason Reason) *ActionLog {
	seat := g.seats[seatID]
	if seat.folded {
		return nil
	}

	seat.folded = true
	seat.allIn = false
	g.activeSeat = 1 - seatID

	g.logger.WithFields(logrus.Fields{
		"seat":   seatID,
		"reason": reason,
	}).Info("seat force-folded")

	return &ActionLog{
		SeatID:   seat.ID,
		SeatName: seat.name,
		Action:   "forced_fold",
		Message:  fmt.Sprintf("%s ran out of time and was forced to fold", seat.name),
	}
}

// RoundComplete returns true when the betting round is over: no seat can
// act, the sole remaining actor has matched the current bet, or both seats
// have acted since the last raise and matched the current bet.
func (g *Game) RoundComplete() bool {
	actors := make([]*Seat, 0, 2)
	for _, seat := range g.seats {
		if seat.canAct() {
			actors = append(actors, seat)
		}
	}

	switch len(actors) {
	case 0:
		return true
	case 1:
		return actors[0].bet >= g.currentBet
	}

	return g.actedSinceRaise[0] && g.actedSinceRaise[1] &&
		g.seats[0].bet == g.currentBet && g.seats[1].bet == g.currentBet
}
