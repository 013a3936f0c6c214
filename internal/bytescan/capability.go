package bytescan

import (
	"os"
	"strings"
)

// Kernel identifies a scan-kernel variant.
type Kernel uint8

const (
	// KernelCompact processes one 8-byte word per iteration.
	KernelCompact Kernel = iota
	// KernelWide processes 32-byte blocks, four words per iteration.
	KernelWide
)

// String returns the string representation of a Kernel.
func (k Kernel) String() string {
	switch k {
	case KernelCompact:
		return "compact"
	case KernelWide:
		return "wide"
	default:
		return "unknown"
	}
}

// ParseKernel parses a string into a Kernel value.
func ParseKernel(s string) (Kernel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compact":
		return KernelCompact, true
	case "wide":
		return KernelWide, true
	default:
		return KernelCompact, false
	}
}

// Package-level state - initialized once at package init.
// No mutex needed: Go guarantees init() runs before any other code.
var (
	// activeKernel is the selected scan kernel.
	activeKernel Kernel

	// hasOverride is true if FLSTRING_KERNEL was set.
	hasOverride bool

	// hasWideVectors is set by platform-specific init when the CPU's vector
	// width makes the 32-byte block loop profitable.
	hasWideVectors bool
)

// initCapability is called from platform-specific init functions after CPU
// features are detected.
func initCapability() {
	if v := os.Getenv("FLSTRING_KERNEL"); v != "" {
		if k, ok := ParseKernel(v); ok {
			activeKernel = k
			hasOverride = true
			applyKernel()
			return
		}
	}

	if hasWideVectors {
		activeKernel = KernelWide
	} else {
		activeKernel = KernelCompact
	}
	applyKernel()
}

func applyKernel() {
	switch activeKernel {
	case KernelWide:
		indexByteImpl = indexByteWide
	default:
		indexByteImpl = indexByteCompact
	}
}

// ActiveKernel reports which scan kernel is in use.
func ActiveKernel() Kernel {
	return activeKernel
}

// Overridden reports whether the kernel was forced via FLSTRING_KERNEL.
func Overridden() bool {
	return hasOverride
}
