package room

import (
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"headsuppoker-server/pkg/poker/holdem"
)

// startMatch boots a listener, seats Alice and Bob, and runs the dealer in
// the background
func startMatch(t *testing.T, turnTimeout, continueTimeout time.Duration) (*joinedConn, *joinedConn, chan error) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	errCh := make(chan error, 1)
	go func() {
		registry, err := Accept(listener, time.Second, logrus.StandardLogger())
		if err != nil {
			errCh <- err
			return
		}

		dealer, err := NewDealer(logrus.StandardLogger(), registry, holdem.DefaultOptions(), turnTimeout, continueTimeout)
		if err != nil {
			errCh <- err
			return
		}

		errCh <- dealer.Run()
	}()

	alice := dialAndJoin(t, listener.Addr().String(), "Alice")
	bob := dialAndJoin(t, listener.Addr().String(), "Bob")

	return alice, bob, errCh
}

func waitForMatch(t *testing.T, errCh chan error) {
	t.Helper()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("dealer did not finish")
	}
}

func TestDealer_foldEndsHand(t *testing.T) {
	a := assert.New(t)

	alice, bob, errCh := startMatch(t, 2*time.Second, 2*time.Second)

	// Alice is the dealer and acts first pre-flop
	msgs := alice.until(t, "your_turn")

	deal := findMessage(msgs, "deal")
	require.NotNil(t, deal)
	a.Equal(2, len(deal["cards"].([]interface{})))
	a.Equal(float64(0), deal["dealer_button"])

	state := findMessage(msgs, "game_state")
	require.NotNil(t, state)
	a.Equal("pre_flop", state["phase"])
	a.Equal(float64(15), state["pot"])
	a.Equal(float64(10), state["current_bet"])
	a.Equal(float64(0), state["active_player"])
	a.Equal(float64(0), state["your_id"])

	alice.send(t, map[string]interface{}{"action": "fold"})

	msgs = alice.until(t, "ask_continue")
	pa := findMessage(msgs, "player_action")
	require.NotNil(t, pa)
	a.Equal("fold", pa["action"])
	a.Equal(float64(0), pa["player_id"])

	hr := findMessage(msgs, "hand_result")
	require.NotNil(t, hr)
	a.Equal(float64(1), hr["winner_id"])
	a.Equal("Bob", hr["winner_name"])
	a.Equal(float64(15), hr["pot"])
	a.Equal("fold", hr["reason"])

	// Bob sees the same outcome and his own hole cards
	bmsgs := bob.until(t, "ask_continue")
	bdeal := findMessage(bmsgs, "deal")
	require.NotNil(t, bdeal)
	a.Equal(2, len(bdeal["cards"].([]interface{})))
	require.NotNil(t, findMessage(bmsgs, "hand_result"))

	alice.send(t, map[string]interface{}{"continue": false})
	bob.send(t, map[string]interface{}{"continue": true})

	waitForMatch(t, errCh)
}

func TestDealer_illegalActionIsReprompted(t *testing.T) {
	a := assert.New(t)

	alice, bob, errCh := startMatch(t, 2*time.Second, 2*time.Second)

	alice.until(t, "your_turn")

	// checking while facing a bet is rejected without advancing the round
	alice.send(t, map[string]interface{}{"action": "check"})
	msgs := alice.until(t, "your_turn")
	errMsg := findMessage(msgs, "error")
	require.NotNil(t, errMsg)
	a.Equal("you cannot check, you must call or raise", errMsg["message"])

	alice.send(t, map[string]interface{}{"action": "call"})

	bob.until(t, "your_turn")
	bob.send(t, map[string]interface{}{"action": "check"})

	// the flop is dealt and the non-dealer acts first
	msgs = bob.until(t, "your_turn")
	var state map[string]interface{}
	for _, msg := range msgs {
		if msg["type"] == "game_state" && msg["phase"] == "flop" {
			state = msg
		}
	}
	require.NotNil(t, state)
	a.Equal(3, len(state["community_cards"].([]interface{})))
	a.Equal(float64(1), state["active_player"])

	bob.send(t, map[string]interface{}{"action": "fold"})

	msgs = alice.until(t, "ask_continue")
	hr := findMessage(msgs, "hand_result")
	require.NotNil(t, hr)
	a.Equal(float64(0), hr["winner_id"])
	a.Equal("Alice", hr["winner_name"])
	a.Equal(float64(20), hr["pot"])
	a.Equal("fold", hr["reason"])

	bob.until(t, "ask_continue")
	alice.send(t, map[string]interface{}{"continue": false})
	bob.send(t, map[string]interface{}{"continue": false})

	waitForMatch(t, errCh)
}

func TestDealer_turnTimeoutForcesFold(t *testing.T) {
	a := assert.New(t)

	alice, bob, errCh := startMatch(t, 100*time.Millisecond, 2*time.Second)

	alice.until(t, "your_turn")

	// Alice never answers
	msgs := alice.until(t, "hand_result")
	pa := findMessage(msgs, "player_action")
	require.NotNil(t, pa)
	a.Equal("forced_fold", pa["action"])
	a.Equal("Alice ran out of time and was forced to fold", pa["message"])

	hr := findMessage(msgs, "hand_result")
	a.Equal(float64(1), hr["winner_id"])
	a.Equal("timeout", hr["reason"])
	a.Equal(float64(15), hr["pot"])

	alice.until(t, "ask_continue")
	bob.until(t, "ask_continue")
	alice.send(t, map[string]interface{}{"continue": false})
	bob.send(t, map[string]interface{}{"continue": false})

	waitForMatch(t, errCh)
}

func TestDealer_disconnectForfeitsMatch(t *testing.T) {
	a := assert.New(t)

	alice, bob, errCh := startMatch(t, 2*time.Second, 2*time.Second)

	alice.until(t, "your_turn")
	require.NoError(t, alice.conn.Close())

	msgs := bob.until(t, "game_over")

	// the live pot goes to the survivor
	hr := findMessage(msgs, "hand_result")
	require.NotNil(t, hr)
	a.Equal(float64(1), hr["winner_id"])
	a.Equal("Bob", hr["winner_name"])
	a.Equal(float64(15), hr["pot"])
	a.Equal("disconnect", hr["reason"])

	over := findMessage(msgs, "game_over")
	a.Equal("Bob", over["winner"])
	a.Equal("Alice disconnected. Bob wins by forfeit.", over["message"])

	waitForMatch(t, errCh)
}

func TestDealer_continueTimeoutEndsMatch(t *testing.T) {
	alice, bob, errCh := startMatch(t, 2*time.Second, 100*time.Millisecond)

	alice.until(t, "your_turn")
	alice.send(t, map[string]interface{}{"action": "fold"})

	alice.until(t, "ask_continue")
	bob.until(t, "ask_continue")

	// neither player answers; both prompts lapse as declines
	waitForMatch(t, errCh)
}
