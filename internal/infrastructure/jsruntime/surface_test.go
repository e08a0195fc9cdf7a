package jsruntime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/domain/entity"
)

func TestSurface_LoadEmitsLoadingEvents(t *testing.T) {
	s := New(context.Background(), StaticPages{"app://one": `window.ran = true;`})
	var events []port.LoadingState
	s.SetCallbacks(port.SurfaceCallbacks{OnLoadingStateChange: func(ls port.LoadingState) {
		events = append(events, ls)
	}})

	require.NoError(t, s.LoadURL(context.Background(), "app://one"))

	assert.Equal(t, []port.LoadingState{
		{IsLoading: true, URL: "app://one"},
		{IsLoading: false, URL: "app://one"},
	}, events)
	assert.False(t, s.IsLoading())
	assert.Equal(t, "app://one", s.URL())

	ran, err := s.Evaluate(`window.ran`)
	require.NoError(t, err)
	assert.Equal(t, true, ran)
}

func TestSurface_UnknownPageFails(t *testing.T) {
	s := New(context.Background(), StaticPages{})
	assert.Error(t, s.LoadURL(context.Background(), "app://missing"))
	assert.NoError(t, s.LoadURL(context.Background(), entity.BlankURL))
}

func TestSurface_NavigationResetsGlobals(t *testing.T) {
	s := New(context.Background(), StaticPages{"app://a": `window.counter = 1;`, "app://b": ``})
	require.NoError(t, s.LoadURL(context.Background(), "app://a"))
	require.NoError(t, s.LoadURL(context.Background(), "app://b"))

	v, err := s.Evaluate(`typeof window.counter`)
	require.NoError(t, err)
	assert.Equal(t, "undefined", v)
}

func TestSurface_QueryChannelIsAsynchronousAndOrdered(t *testing.T) {
	s := New(context.Background(), StaticPages{"app://q": ``})
	ch, err := s.NewQueryChannel()
	require.NoError(t, err)

	var got []string
	ch.SetHandler(func(payload string) { got = append(got, payload) })
	require.NoError(t, s.LoadURL(context.Background(), "app://q"))

	script := ch.Inject(`"a"`) + ch.Inject(`"b"`) + `window.afterSend = true;`
	require.NoError(t, s.ExecuteScript(context.Background(), script, ""))

	assert.Equal(t, []string{"a", "b"}, got)

	ch.Dispose()
	require.NoError(t, s.ExecuteScript(context.Background(), ch.Inject(`"c"`), ""))
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestSurface_PostMessageReachesListeners(t *testing.T) {
	page := `
window.received = [];
window.addEventListener("message", function (e) { window.received.push(e.data.n); });
`
	s := New(context.Background(), StaticPages{"app://m": page})
	require.NoError(t, s.LoadURL(context.Background(), "app://m"))

	require.NoError(t, s.ExecuteScript(context.Background(), `window.postMessage({"n":1},'*');window.postMessage({"n":2},'*');`, ""))

	v, err := s.Evaluate(`window.received.join(",")`)
	require.NoError(t, err)
	assert.Equal(t, "1,2", v)
}

func TestSurface_ScriptErrorsAreReported(t *testing.T) {
	s := New(context.Background(), StaticPages{"app://e": `throw new Error("page broke")`})
	require.NoError(t, s.LoadURL(context.Background(), "app://e"))
	assert.Contains(t, s.Console(), "error: Uncaught Error: page broke")

	err := s.ExecuteScript(context.Background(), `nope(`, "")
	assert.Error(t, err)
}

func TestSurface_ConsoleAndTimers(t *testing.T) {
	s := New(context.Background(), StaticPages{"app://c": `setTimeout(function () { console.log("later", 2); }); console.warn("now");`})
	require.NoError(t, s.LoadURL(context.Background(), "app://c"))
	assert.Equal(t, []string{"warn: now", "info: later 2"}, s.Console())
}

func TestSurface_ContextMenu(t *testing.T) {
	s := New(context.Background(), nil)
	assert.Equal(t, []string{"Back", "Inspect"}, s.RequestContextMenu([]string{"Back", "Inspect"}))

	s.SetCallbacks(port.SurfaceCallbacks{OnContextMenu: func(menu port.ContextMenu) {
		assert.Equal(t, 2, menu.Len())
		menu.Clear()
	}})
	assert.Empty(t, s.RequestContextMenu([]string{"Back", "Inspect"}))
}

func TestSurface_DisposeIsIdempotent(t *testing.T) {
	s := New(context.Background(), StaticPages{"app://d": ``})
	require.NoError(t, s.LoadURL(context.Background(), "app://d"))

	require.NoError(t, s.Dispose())
	require.NoError(t, s.Dispose())

	assert.ErrorIs(t, s.LoadURL(context.Background(), "app://d"), ErrDisposed)
	assert.ErrorIs(t, s.ExecuteScript(context.Background(), `1`, ""), ErrDisposed)
	assert.ErrorIs(t, s.Focus(), ErrDisposed)
	_, err := s.NewQueryChannel()
	assert.ErrorIs(t, err, ErrDisposed)
}
