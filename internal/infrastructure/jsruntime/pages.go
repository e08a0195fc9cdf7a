package jsruntime

import (
	"fmt"
	"strings"

	"github.com/bnema/hostbridge/internal/domain/entity"
)

// PageSource resolves a URL to the script that renders the page.
type PageSource interface {
	Page(url string) (string, error)
}

// PageSourceFunc adapts a function to PageSource.
type PageSourceFunc func(url string) (string, error)

// Page calls f(url).
func (f PageSourceFunc) Page(url string) (string, error) {
	return f(url)
}

// StaticPages serves fixed scripts by URL. about:blank is always available.
type StaticPages map[string]string

// Page implements PageSource.
func (p StaticPages) Page(url string) (string, error) {
	if src, ok := p[url]; ok {
		return src, nil
	}
	if url == entity.BlankURL {
		return "", nil
	}
	return "", fmt.Errorf("page not found: %s", url)
}

// Bundle concatenates scripts in order into one page script.
func Bundle(scripts ...string) string {
	return strings.Join(scripts, "\n;\n")
}
