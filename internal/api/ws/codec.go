package ws

import (
	"encoding/json"

	"github.com/bytedance/sonic"
)

// Event names understood or produced by the realtime endpoint.
const (
	EventRegister = "register"
)

// Frame is one realtime message in either direction.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outgoingFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// DecodeFrame parses an inbound text message
func DecodeFrame(msg []byte) (Frame, error) {
	var f Frame
	if err := sonic.Unmarshal(msg, &f); err != nil {
		return Frame{}, err
	}
	return f, nil
}

// EncodeFrame serialises an outbound event
func EncodeFrame(event string, data any) ([]byte, error) {
	return sonic.Marshal(outgoingFrame{Event: event, Data: data})
}
