package webkit

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFrame(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		id      int
		payload string
		wantErr bool
	}{
		{name: "json payload", text: `7:{"type":"a","t":"1:2"}`, id: 7, payload: `{"type":"a","t":"1:2"}`},
		{name: "empty payload", text: "2:", id: 2, payload: ""},
		{name: "no prefix", text: `{"type":"a"}`, wantErr: true},
		{name: "bad id", text: `x:{}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, payload, err := splitFrame(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.payload, payload)
		})
	}
}

func TestFramePayload(t *testing.T) {
	assert.Equal(t, "'3:' + String(text)", framePayload(3, "text"))
}

type recordingDisposer struct {
	calls *[]string
	err   error
}

func (d recordingDisposer) Dispose() error {
	*d.calls = append(*d.calls, "surface")
	return d.err
}

func TestCloseWindow_ClosesPanelBeforeSurface(t *testing.T) {
	var calls []string
	log := zerolog.Nop()

	closeWindow(&log, func() error {
		calls = append(calls, "panel")
		return errors.New("journal busy")
	}, recordingDisposer{calls: &calls})

	assert.Equal(t, []string{"panel", "surface"}, calls)
}

func TestCloseWindow_WithoutHook(t *testing.T) {
	var calls []string
	log := zerolog.Nop()

	closeWindow(&log, nil, recordingDisposer{calls: &calls, err: ErrDisposed})

	assert.Equal(t, []string{"surface"}, calls)
}
