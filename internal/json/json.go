// Package json is the JSON codec shared by the toolkit. It is backed by
// json-iterator in standard-library compatible mode.
package json

import (
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	Marshal    = json.Marshal
	Unmarshal  = json.Unmarshal
	NewDecoder = json.NewDecoder
	NewEncoder = json.NewEncoder
)

// RawMessage is the standard library type so callers holding an
// encoding/json.RawMessage (SDK tool inputs, MCP arguments) can pass it
// through without conversion.
type RawMessage = stdjson.RawMessage
