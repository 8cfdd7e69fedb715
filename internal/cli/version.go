package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const appURL = "https://github.com/babarot/nctrash"

// Version is filled from build-time variables
type Version struct {
	AppName   string
	Version   string
	Revision  string
	BuildDate string
}

func unset(s string) bool {
	switch s {
	case "", "unset", "unknown", "develop":
		return true
	}
	return false
}

// resolve fills unset fields from the module build info, which is present
// for `go install` builds without ldflags.
func (v Version) resolve() Version {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	if unset(v.Version) {
		v.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && unset(v.Revision):
			v.Revision = s.Value
		case s.Key == "vcs.time" && unset(v.BuildDate):
			v.BuildDate = s.Value
		}
	}
	return v
}

func (v Version) Print() string {
	v = v.resolve()

	var s strings.Builder
	fmt.Fprintf(&s, "%s restores every item of a Nextcloud trash bin\n", v.AppName)
	fmt.Fprintf(&s, "%s\n\n", appURL)
	for _, row := range [][2]string{
		{"version", v.Version},
		{"revision", v.Revision},
		{"buildDate", v.BuildDate},
		{"go", runtime.Version()},
	} {
		fmt.Fprintf(&s, "%s: %s\n", row[0], row[1])
	}
	return s.String()
}
