//go:build !webkit_cgo

package webkit

// IsNativeAvailable reports whether the WebKitGTK backend is compiled in.
// Without webkit_cgo the package only carries RunWindow's stub.
func IsNativeAvailable() bool { return false }
