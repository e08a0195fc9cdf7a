package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeline_DisabledAboveDebug(t *testing.T) {
	logger := zerolog.New(&bytes.Buffer{}).Level(zerolog.InfoLevel)
	tl := NewTimeline(WithContext(context.Background(), logger))
	assert.Nil(t, tl)

	// nil timelines are no-ops
	tl.Mark("ignored")
	tl.Finish()
	assert.Empty(t, tl.Marks())
}

func TestTimeline_MarksAndSummary(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	tl := NewTimeline(WithContext(context.Background(), logger))
	require.NotNil(t, tl)

	tl.Mark("surface")
	tl.Mark("loaded")
	tl.Finish()
	tl.Mark("late")

	marks := tl.Marks()
	require.Len(t, marks, 2)
	assert.Equal(t, "surface", marks[0].Name)
	assert.Equal(t, "loaded", marks[1].Name)
	assert.GreaterOrEqual(t, marks[1].Elapsed, marks[0].Elapsed)

	out := buf.String()
	assert.Contains(t, out, `"mark":"surface"`)
	assert.Contains(t, out, "panel timeline complete")
	assert.NotContains(t, out, "late")
}
