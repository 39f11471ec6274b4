package lanes

import (
	"os"
	"strconv"
	"unsafe"
)

// currentWidth is the host SIMD register width in bytes.
// Set by init() in dispatch_*.go files.
var currentWidth int

// currentName is the human-readable name of the detected SIMD target.
// Set by init() in dispatch_*.go files.
var currentName string

// CurrentWidth returns the host SIMD register width in bytes.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the detected SIMD target.
// For example: "avx2", "neon", "scalar".
func CurrentName() string {
	return currentName
}

// NoSimdEnv checks if the LANES_NO_SIMD environment variable is set.
// When set, the default width is derived from 16-byte registers regardless
// of CPU capabilities.
func NoSimdEnv() bool {
	val := os.Getenv("LANES_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// DefaultWidth returns the number of lanes of type T that fit in a host
// register. LANES_WIDTH overrides the detected value when it holds a
// positive power of two.
//
// For example, with AVX2 (32 bytes):
//   - float32: 32/4 = 8 lanes
//   - float64: 32/8 = 4 lanes
func DefaultWidth[T Lanes]() int {
	if w, ok := envWidth(); ok {
		return w
	}
	var dummy T
	return max(1, currentWidth/int(unsafe.Sizeof(dummy)))
}

func envWidth() (int, bool) {
	val := os.Getenv("LANES_WIDTH")
	if val == "" {
		return 0, false
	}
	w, err := strconv.Atoi(val)
	if err != nil || !isPowerOfTwo(w) {
		Logger().Warn("ignoring LANES_WIDTH", "value", val, "reason", ErrInvalidWidth)
		return 0, false
	}
	return w, true
}

func setScalarMode() {
	currentWidth = 16 // Use 16-byte vectors even in scalar mode for consistency
	currentName = "scalar"
}
