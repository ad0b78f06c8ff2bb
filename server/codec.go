package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownCodec is returned for an unrecognized codec name
var ErrUnknownCodec = errors.New("unknown codec")

// Codec encodes server messages into websocket frames
type Codec interface {
	Name() string
	Encode(msg ServerMessage) (frameType int, data []byte, err error)
}

// ParseCodec returns the codec for a name ("json" or "msgpack")
func ParseCodec(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSONCodec{}, nil
	case "msgpack":
		return MsgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

// JSONCodec sends text frames
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(msg ServerMessage) (int, []byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return 0, nil, fmt.Errorf("encoding %s message: %w", msg.Type, err)
	}
	return websocket.TextMessage, data, nil
}

// MsgpackCodec sends binary frames. Field names follow the json tags so
// both codecs produce the same keys.
type MsgpackCodec struct{}

func (MsgpackCodec) Name() string { return "msgpack" }

func (MsgpackCodec) Encode(msg ServerMessage) (int, []byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(msg); err != nil {
		return 0, nil, fmt.Errorf("encoding %s message: %w", msg.Type, err)
	}
	return websocket.BinaryMessage, buf.Bytes(), nil
}
