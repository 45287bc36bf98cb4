// Package version carries the build identity of the lefcheck binary.
// Значения подставляются при сборке через -ldflags; без них бинарь
// представляется версией дерева разработки.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the lefcheck binary.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colorized returns Version with each semver component highlighted.
// Строка без трёх компонентов major.minor.patch возвращается как есть,
// поэтому значение из -ldflags любой формы остаётся читаемым.
func Colorized() string {
	base, suffix, _ := strings.Cut(Version, "-")
	parts := strings.Split(base, ".")
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
