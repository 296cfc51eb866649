// Package api holds the wire messages of the households RPC services.
//
// Messages are plain Go structs encoded as JSON. Money amounts are decimal
// strings ("10.00") so no precision is lost in transit.
package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

const (
	codecNameJSON            = "json"
	codecNameJSONCharsetUTF8 = "json; charset=utf-8"
)

// jsonCodec is a connect.Codec for the non-protobuf messages in this package.
type jsonCodec struct {
	name string
}

var _ connect.Codec = jsonCodec{}

func (c jsonCodec) Name() string { return c.name }

func (c jsonCodec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (c jsonCodec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		// Connect sends an empty body for messages with no set fields.
		return nil
	}
	if err := json.Unmarshal(data, message); err != nil {
		return fmt.Errorf("unmarshal %T: %w", message, err)
	}
	return nil
}

// WithJSON registers the JSON codec on a handler (both content types browsers
// send) or selects it on a client.
func WithJSON() connect.Option {
	// A client keeps the last codec given, so plain "json" goes last.
	return connect.WithOptions(
		connect.WithCodec(jsonCodec{name: codecNameJSONCharsetUTF8}),
		connect.WithCodec(jsonCodec{name: codecNameJSON}),
	)
}
