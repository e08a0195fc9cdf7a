package entity

// ConnectionState is the lifecycle of the bridge between host and page.
type ConnectionState int

const (
	// StateUnconnected means no bridge is installed in the current page.
	StateUnconnected ConnectionState = iota
	// StateConnecting means a real page finished loading and the bridge
	// script is being installed.
	StateConnecting
	// StateConnected means the bridge is installed and the page can reach
	// the host.
	StateConnected
	// StateDisposed is terminal.
	StateDisposed
)

// BlankURL is the sentinel page that is never instrumented.
const BlankURL = "about:blank"

// String returns a human-readable representation of the state.
func (s ConnectionState) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transition can leave the state.
func (s ConnectionState) IsTerminal() bool {
	return s == StateDisposed
}

// ShouldInstallBridge reports whether a finished load qualifies for bridge
// installation. Pages still loading and the blank sentinel are skipped.
func ShouldInstallBridge(isLoading bool, url string) bool {
	return !isLoading && url != BlankURL
}
