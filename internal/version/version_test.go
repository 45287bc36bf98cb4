package version

import (
	"testing"

	"github.com/fatih/color"
)

// TestColorizedPlain: при выключенном цвете строка совпадает с Version,
// включая суффикс после дефиса.
func TestColorizedPlain(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	if got := Colorized(); got != Version {
		t.Errorf("Expected %q, got %q", Version, got)
	}
}

// TestColorizedNonSemver: произвольное значение из -ldflags возвращается
// как есть.
func TestColorizedNonSemver(t *testing.T) {
	prev := Version
	Version = "nightly"
	defer func() { Version = prev }()

	if got := Colorized(); got != "nightly" {
		t.Errorf("Expected the raw version back, got %q", got)
	}
}
