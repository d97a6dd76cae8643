package bufferedpaint

import (
	"strings"

	"golang.org/x/mod/semver"
)

// MinOSVersion is the oldest OS release with buffered cross-fades.
const MinOSVersion = "v6.0.0"

// Capabilities describes what the host environment offers. It is read
// once, when an animator is constructed.
type Capabilities struct {
	// OSVersion is a semantic version; a missing "v" prefix is tolerated.
	OSVersion string
	// Theming reports whether visual themes are active.
	Theming bool
	// ThemedRendering reports whether the host process opts into themed
	// rendering.
	ThemedRendering bool
}

// DefaultCapabilities describes a modern, themed host.
func DefaultCapabilities() Capabilities {
	return Capabilities{OSVersion: "v10.0.0", Theming: true, ThemedRendering: true}
}

// Supported reports whether buffered animation can be used at all.
func (c Capabilities) Supported() bool {
	if !c.Theming || !c.ThemedRendering {
		return false
	}
	v := canonicalVersion(c.OSVersion)
	if v == "" {
		return false
	}
	return semver.Compare(v, MinOSVersion) >= 0
}

func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
