package entity

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Envelope is a JSON document crossing the bridge in either direction.
// The bridge never interprets its fields beyond deriving a routing key.
type Envelope []byte

// Origin optionally identifies the panel a message came from.
// The zero value means the sender is unknown.
type Origin string

// NoOrigin is used when the query channel carries no sender identity.
const NoOrigin Origin = ""

// Marshal serializes v to compact UTF-8 JSON suitable for embedding in a
// script. Envelope and json.RawMessage values are validated and compacted
// instead of being re-encoded.
func Marshal(v any) (Envelope, error) {
	var src any = v
	switch x := v.(type) {
	case Envelope:
		if !json.Valid(x) {
			return nil, &SerializationError{Type: "entity.Envelope", Err: fmt.Errorf("invalid JSON text")}
		}
		src = json.RawMessage(x)
	case json.RawMessage:
		if !json.Valid(x) {
			return nil, &SerializationError{Type: "json.RawMessage", Err: fmt.Errorf("invalid JSON text")}
		}
	}

	// json.Marshal escapes U+2028/U+2029 and HTML specials, which keeps the
	// text safe inside an injected <script> body.
	data, err := json.Marshal(src)
	if err != nil {
		return nil, &SerializationError{Type: fmt.Sprintf("%T", v), Err: err}
	}
	return Envelope(data), nil
}

// Unmarshal parses inbound wire text into an Envelope.
func Unmarshal(text string) (Envelope, error) {
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &MalformedMessageError{Payload: truncatePayload(text), Err: err}
	}
	return Envelope(raw), nil
}

// MarshalJSON emits the envelope verbatim.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if len(e) == 0 {
		return []byte("null"), nil
	}
	return e, nil
}

// UnmarshalJSON stores a copy of data.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	if e == nil {
		return fmt.Errorf("entity.Envelope: UnmarshalJSON on nil pointer")
	}
	*e = append((*e)[0:0], data...)
	return nil
}

// String returns the wire text.
func (e Envelope) String() string {
	return string(e)
}

// Decode unmarshals the envelope into dst.
func (e Envelope) Decode(dst any) error {
	if len(e) == 0 {
		return fmt.Errorf("empty envelope")
	}
	return json.Unmarshal(e, dst)
}

// RoutingKey derives the dispatch key from the envelope's declared shape.
// An object with a non-empty string "method" routes by method, otherwise a
// non-empty string "type" routes by type. Anything else has no key.
func (e Envelope) RoutingKey() string {
	var probe struct {
		Method any `json:"method"`
		Type   any `json:"type"`
	}
	if err := json.Unmarshal(e, &probe); err != nil {
		return ""
	}
	if method, ok := probe.Method.(string); ok && method != "" {
		return method
	}
	if typ, ok := probe.Type.(string); ok && typ != "" {
		return typ
	}
	return ""
}

// Equal reports whether both envelopes decode to structurally equal values.
func (e Envelope) Equal(other Envelope) bool {
	var a, b any
	if err := json.Unmarshal(e, &a); err != nil {
		return false
	}
	if err := json.Unmarshal(other, &b); err != nil {
		return false
	}
	return reflect.DeepEqual(a, b)
}

const maxPayloadPreview = 256

func truncatePayload(s string) string {
	if len(s) <= maxPayloadPreview {
		return s
	}
	return s[:maxPayloadPreview] + "..."
}
