//go:build !amd64 && !arm64

package bytescan

func init() {
	initCapability()
}
