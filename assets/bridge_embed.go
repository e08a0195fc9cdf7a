// Package assets holds the page-side scripts shipped with hostbridge.
package assets

import (
	_ "embed"
	"net/url"
	"strings"
)

// BridgeClientScript defines window.messageQueue and window.hostBridge.
// Pages include it as their first script so messages sent before the
// bridge is installed are queued instead of lost.
//
//go:embed bridge/client.js
var BridgeClientScript string

// EchoPageScript is the built-in demo page used by "hostbridge open".
//
//go:embed pages/echo.js
var EchoPageScript string

// EchoPageURL is the pseudo URL of the built-in demo page.
const EchoPageURL = "hostbridge://echo"

// EchoPageHTML wraps the client bootstrap and the echo page in a document.
func EchoPageHTML() string {
	var b strings.Builder
	b.WriteString("<!doctype html><html><head><meta charset=\"utf-8\"><title>hostbridge echo</title>")
	b.WriteString("<script>")
	b.WriteString(BridgeClientScript)
	b.WriteString("</script><script>")
	b.WriteString(EchoPageScript)
	b.WriteString("</script></head><body><p>hostbridge echo page</p></body></html>")
	return b.String()
}

// EchoPageDataURL returns the echo page as a data: URL for real browser engines.
func EchoPageDataURL() string {
	return "data:text/html;charset=utf-8," + url.PathEscape(EchoPageHTML())
}
