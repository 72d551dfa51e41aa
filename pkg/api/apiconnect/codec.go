// Package apiconnect wires the splitter.v1 services to Connect.
//
// The services exchange plain Go structs from package api, so handlers and
// clients register JSONCodec in place of the default protobuf codecs.
package apiconnect

import (
	"encoding/json"
	"fmt"
)

// JSONCodec marshals messages with encoding/json. It is registered under
// the "json" name, so it serves the application/json content type.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
