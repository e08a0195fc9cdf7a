package cdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryChannelInject(t *testing.T) {
	ch := &queryChannel{name: "__hostQuery_2"}
	assert.Equal(t, "window.__hostQuery_2(text);", ch.Inject("text"))
}

func TestQueryChannelDropsAfterDispose(t *testing.T) {
	stopped := 0
	ch := &queryChannel{name: "__hostQuery_1", stop: func() error {
		stopped++
		return nil
	}}

	var got []string
	ch.SetHandler(func(p string) { got = append(got, p) })
	ch.deliver("a")
	ch.Dispose()
	ch.Dispose()
	ch.deliver("b")

	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, 1, stopped)
}
