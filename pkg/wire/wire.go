// Package wire defines the newline-delimited JSON messages exchanged between
// the server and the two connected players. Every message carries a "type"
// discriminator on the wire; the Go side works with a closed set of variants.
package wire

import (
	"encoding/json"
	"fmt"
)

// ServerMessage is a message sent from the server to a player
type ServerMessage interface {
	MessageType() string
}

// Encode marshals a server message into a single JSON line, injecting the
// message's type tag. The returned slice is newline-terminated.
func Encode(msg ServerMessage) ([]byte, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}

	fields["type"] = msg.MessageType()

	line, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	return append(line, '\n'), nil
}

// ClientMessage is a message received from a player
type ClientMessage interface {
	clientMessage()
}

// Join is the handshake a player sends after connecting
type Join struct {
	Name string `json:"name"`
}

// Turn is a player's response to a your_turn prompt
type Turn struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// Continue is a player's response to an ask_continue prompt
type Continue struct {
	Continue bool `json:"continue"`
}

func (Join) clientMessage()     {}
func (Turn) clientMessage()     {}
func (Continue) clientMessage() {}

// clientEnvelope is the superset of all client message fields, used to
// classify an incoming line. Turn and continue responses carry no "type"
// field; they are recognized by their discriminating key instead.
type clientEnvelope struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Action   string `json:"action"`
	Amount   int    `json:"amount"`
	Continue *bool  `json:"continue"`
}

// ParseClientMessage decodes a single line received from a player
func ParseClientMessage(line []byte) (ClientMessage, error) {
	var env clientEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return nil, fmt.Errorf("malformed message: %w", err)
	}

	switch {
	case env.Type == "join":
		return Join{Name: env.Name}, nil
	case env.Type == "" && env.Action != "":
		return Turn{Action: env.Action, Amount: env.Amount}, nil
	case env.Type == "" && env.Continue != nil:
		return Continue{Continue: *env.Continue}, nil
	}

	return nil, fmt.Errorf("unknown message type: %q", env.Type)
}
