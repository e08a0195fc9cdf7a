//go:build webkit_cgo

package webkit

// IsNativeAvailable reports whether the WebKitGTK backend is compiled in.
func IsNativeAvailable() bool { return true }
