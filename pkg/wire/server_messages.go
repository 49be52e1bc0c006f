package wire

import (
	"headsuppoker-server/pkg/deck"
)

// Stats are a player's per-session statistics
type Stats struct {
	HandsPlayed int `json:"hands_played"`
	HandsWon    int `json:"hands_won"`
}

// PlayerState is the public view of a seat inside a game_state message
type PlayerState struct {
	Name   string `json:"name"`
	Chips  int    `json:"chips"`
	Bet    int    `json:"bet"`
	Folded bool   `json:"folded"`
	AllIn  bool   `json:"all_in"`
	Stats  Stats  `json:"stats"`
}

// Joined confirms a join request and assigns the player their seat
type Joined struct {
	PlayerID int    `json:"player_id"`
	Message  string `json:"message"`
}

// Deal delivers a player's two hole cards. Sent privately per seat.
type Deal struct {
	Cards        []*deck.Card `json:"cards"`
	DealerButton int          `json:"dealer_button"`
}

// GameState is the public state snapshot broadcast after every change
type GameState struct {
	Phase          string              `json:"phase"`
	Pot            int                 `json:"pot"`
	CommunityCards []*deck.Card        `json:"community_cards"`
	CurrentBet     int                 `json:"current_bet"`
	Players        map[int]PlayerState `json:"players"`
	ActivePlayer   int                 `json:"active_player"`
	DealerButton   int                 `json:"dealer_button"`
	YourID         int                 `json:"your_id"`
}

// YourTurn prompts a single seat to act
type YourTurn struct{}

// PlayerAction announces an accepted action to both seats
type PlayerAction struct {
	PlayerID   int    `json:"player_id"`
	PlayerName string `json:"player_name"`
	Action     string `json:"action"`
	Amount     int    `json:"amount,omitempty"`
	Message    string `json:"message"`
}

// HandResult announces the outcome of a hand
type HandResult struct {
	WinnerID   int                    `json:"winner_id"`
	WinnerName string                 `json:"winner_name"`
	Pot        int                    `json:"pot"`
	Reason     string                 `json:"reason"`
	AllCards   map[int][]*deck.Card   `json:"all_cards"`
	Stats      map[int]Stats          `json:"stats"`
}

// AskContinue asks both seats whether to play another hand
type AskContinue struct{}

// GameOver announces the end of the match
type GameOver struct {
	Winner  string `json:"winner"`
	Message string `json:"message"`
}

// Error reports a non-fatal protocol violation to the offending seat
type Error struct {
	Message string `json:"message"`
}

// MessageType identifies the variant on the wire
func (Joined) MessageType() string { return "joined" }

// MessageType identifies the variant on the wire
func (Deal) MessageType() string { return "deal" }

// MessageType identifies the variant on the wire
func (GameState) MessageType() string { return "game_state" }

// MessageType identifies the variant on the wire
func (YourTurn) MessageType() string { return "your_turn" }

// MessageType identifies the variant on the wire
func (PlayerAction) MessageType() string { return "player_action" }

// MessageType identifies the variant on the wire
func (HandResult) MessageType() string { return "hand_result" }

// MessageType identifies the variant on the wire
func (AskContinue) MessageType() string { return "ask_continue" }

// MessageType identifies the variant on the wire
func (GameOver) MessageType() string { return "game_over" }

// MessageType identifies the variant on the wire
func (Error) MessageType() string { return "error" }
