//go:build webkit_cgo

package webkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryChannelInjectFramesPayload(t *testing.T) {
	ch := &queryChannel{id: 3}

	assert.Equal(t,
		"window.webkit.messageHandlers.hostbridge.postMessage('3:' + String(text));",
		ch.Inject("text"))
}

func TestQueryChannelDeliverAfterDispose(t *testing.T) {
	s := &Surface{channels: map[int]*queryChannel{}}
	ch := &queryChannel{surface: s, id: 1}
	s.channels[1] = ch

	var got []string
	ch.SetHandler(func(p string) { got = append(got, p) })
	ch.deliver("a")
	ch.Dispose()
	ch.deliver("b")
	ch.Dispose()

	assert.Equal(t, []string{"a"}, got)
	assert.Empty(t, s.channels)
}
