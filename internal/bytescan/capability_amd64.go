//go:build amd64

package bytescan

import "golang.org/x/sys/cpu"

func init() {
	hasWideVectors = cpu.X86.HasAVX2 || cpu.X86.HasSSE2
	initCapability()
}
