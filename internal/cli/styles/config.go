package styles

import (
	"fmt"
)

// ConfigRenderer renders config command output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a config renderer.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderSchemaWritten reports where the schema was written.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	return fmt.Sprintf("%s %s %s",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Normal.Render("Schema written to"),
		r.theme.Highlight.Render(path),
	)
}

// RenderConfig renders the effective configuration as a boxed JSON block.
func (r *ConfigRenderer) RenderConfig(path string, body []byte) string {
	header := r.theme.BoxHeader.Render(fmt.Sprintf("%s %s", IconConfig, path))
	return r.theme.Box.Render(header + "\n" + r.theme.Normal.Render(string(body)))
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	return r.theme.ErrorStyle.Render(fmt.Sprintf("%s %v", IconX, err))
}
