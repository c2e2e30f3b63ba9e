package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-web/internal/presenter"
)

const (
	actionState   = "game:state"
	actionPlay    = "game:play"
	actionJump    = "game:jump"
	actionRestart = "game:restart"
	actionError   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Cell *int `json:"cell,omitempty"`
	Move *int `json:"move,omitempty"`
}

type ResponsePayload struct {
	Game  *presenter.GameView `json:"game,omitempty"`
	Error string              `json:"error,omitempty"`
}

func newMessage(action string, payload ResponsePayload) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Message{Action: action, Payload: raw}, nil
}
