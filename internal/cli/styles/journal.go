package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/domain/entity"
)

const journalTimeFormat = "2006-01-02 15:04:05"

// JournalRenderer renders diagnostics journal entries.
type JournalRenderer struct {
	theme *Theme
}

// NewJournalRenderer creates a journal renderer.
func NewJournalRenderer(theme *Theme) *JournalRenderer {
	return &JournalRenderer{theme: theme}
}

// RenderEntries renders entries newest first, one per line.
func (r *JournalRenderer) RenderEntries(path string, entries []port.JournalEntry) string {
	header := r.theme.BoxHeader.Render(fmt.Sprintf("%s Journal  %s", IconDatabase, r.theme.Subtle.Render(path)))
	if len(entries) == 0 {
		return header + "\n" + r.theme.Subtle.Render("No reported errors.")
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, r.renderEntry(e))
	}
	return header + "\n" + strings.Join(lines, "\n")
}

func (r *JournalRenderer) renderEntry(e port.JournalEntry) string {
	ts := r.theme.Subtle.Render(e.RecordedAt.Local().Format(journalTimeFormat))
	kind := r.kindStyle(e.Kind).Render(string(e.Kind))
	panel := ""
	if e.PanelID != "" {
		panel = " " + r.theme.BadgeMuted.Render(shortID(e.PanelID))
	}
	return fmt.Sprintf("%s %s%s %s", ts, kind, panel, r.theme.Normal.Render(e.Message))
}

func (r *JournalRenderer) kindStyle(kind entity.ErrorKind) lipgloss.Style {
	switch kind {
	case entity.KindMalformed, entity.KindUnrouted:
		return r.theme.WarningStyle.Bold(true)
	default:
		return r.theme.ErrorStyle.Bold(true)
	}
}

// RenderPurged renders the result of a purge.
func (r *JournalRenderer) RenderPurged(removed int64, olderThan time.Time) string {
	return fmt.Sprintf("%s %s %s",
		r.theme.SuccessStyle.Render(IconTrash),
		r.theme.Normal.Render(fmt.Sprintf("Removed %d entries recorded before", removed)),
		r.theme.Highlight.Render(olderThan.Local().Format(journalTimeFormat)),
	)
}

// RenderDisabled is shown when the journal is turned off in config.
func (r *JournalRenderer) RenderDisabled() string {
	return r.theme.WarningStyle.Render(IconWarning + " The diagnostics journal is disabled (diagnostics.journal_enabled).")
}

func shortID(id string) string {
	const n = 8
	if len(id) <= n {
		return id
	}
	return id[:n]
}
