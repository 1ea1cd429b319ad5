// Package api defines the Platelog RPC surface: message types, procedure
// names, and typed Connect clients and handlers.
//
// Messages are plain Go structs carried as JSON. Timestamp fields use the
// protobuf well-known Timestamp and are written in its protojson form, an
// RFC 3339 string, so clients see the same shape as other Connect APIs.
package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec marshals messages with encoding/json. It registers under the
// name "json", replacing Connect's proto-only JSON codec.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// WithJSON is the codec option every Platelog client and handler uses.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
