package entity

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cyclicNode struct {
	Name string      `json:"name"`
	Next *cyclicNode `json:"next"`
}

func TestMarshalUnmarshal_RoundTrip(t *testing.T) {
	values := []any{
		nil,
		true,
		42.5,
		"plain",
		"line\u2028separator <script>&</script>",
		[]any{1.0, "two", map[string]any{"three": 3.0}},
		map[string]any{
			"type":    "webview/ready",
			"payload": map[string]any{"ids": []any{"a", "b"}, "count": 2.0},
		},
	}

	for _, v := range values {
		env, err := Marshal(v)
		require.NoError(t, err)

		back, err := Unmarshal(env.String())
		require.NoError(t, err)

		var decoded any
		require.NoError(t, back.Decode(&decoded))
		assert.Equal(t, v, decoded)
	}
}

func TestMarshal_EscapesScriptBreakingCharacters(t *testing.T) {
	env, err := Marshal(map[string]string{"text": "a\u2028b</script>"})
	require.NoError(t, err)

	assert.NotContains(t, env.String(), "\u2028")
	assert.NotContains(t, env.String(), "</script>")
}

func TestMarshal_RawEnvelopeIsCompacted(t *testing.T) {
	env, err := Marshal(Envelope(`{ "type" : "x",  "n": [1, 2] }`))
	require.NoError(t, err)
	assert.Equal(t, `{"type":"x","n":[1,2]}`, env.String())
}

func TestMarshal_SerializationErrors(t *testing.T) {
	loop := &cyclicNode{Name: "a"}
	loop.Next = loop

	cases := map[string]any{
		"channel":     make(chan int),
		"func":        func() {},
		"nan":         math.NaN(),
		"cycle":       loop,
		"invalid raw": Envelope(`{"type":`),
	}

	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			env, err := Marshal(v)
			assert.Nil(t, env)

			var serr *SerializationError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, KindSerialization, KindOf(err))
		})
	}
}

func TestUnmarshal_Malformed(t *testing.T) {
	for _, text := range []string{"", "{", "not json", `{"a":1}}`} {
		_, err := Unmarshal(text)

		var merr *MalformedMessageError
		require.True(t, errors.As(err, &merr), "input %q", text)
		assert.Equal(t, KindMalformed, KindOf(err))
	}
}

func TestEnvelope_RoutingKey(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"method wins", `{"method":"codestream/login","type":"ignored"}`, "codestream/login"},
		{"type", `{"type":"webview/ready"}`, "webview/ready"},
		{"empty method falls back to type", `{"method":"","type":"t"}`, "t"},
		{"non string method", `{"method":7}`, ""},
		{"array", `[1,2,3]`, ""},
		{"scalar", `"hello"`, ""},
		{"object without key", `{"id":1}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Envelope(tt.text).RoutingKey())
		})
	}
}

func TestEnvelope_Equal(t *testing.T) {
	assert.True(t, Envelope(`{"a":1,"b":[true,null]}`).Equal(Envelope(`{ "b":[true,null], "a":1.0 }`)))
	assert.False(t, Envelope(`{"a":1}`).Equal(Envelope(`{"a":2}`)))
	assert.False(t, Envelope(`{`).Equal(Envelope(`{}`)))
}

func TestShouldInstallBridge(t *testing.T) {
	assert.False(t, ShouldInstallBridge(true, "https://x"))
	assert.False(t, ShouldInstallBridge(false, BlankURL))
	assert.True(t, ShouldInstallBridge(false, "https://x"))
}

func TestKindOf(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), &DisposedError{Op: "focus"})
	assert.Equal(t, KindDisposed, KindOf(wrapped))
	assert.True(t, IsDisposed(wrapped))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindHandler, KindOf(&HandlerError{Key: "k", Err: errors.New("boom")}))
}
