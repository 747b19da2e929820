package layout

import "strings"

// Shell identifies the structural wrapper around a page's content.
type Shell string

const (
	// ShellPublic renders the site header, footer and floating booking CTA.
	ShellPublic Shell = "public"
	// ShellAdmin renders the bare back-office chrome, no public furniture.
	ShellAdmin Shell = "admin"
)

// Admin path markers. The login page uses the admin shell even though it sits
// outside both role gates.
const (
	MarkerAdmin    = "mb-admin"
	MarkerMechanic = "mech-admin"
	MarkerLogin    = "admin-login"
)

var adminMarkers = map[string]struct{}{
	MarkerAdmin:    {},
	MarkerMechanic: {},
	MarkerLogin:    {},
}

// Classify selects the shell for a request path. The decision is derived
// from the path alone, per request; it never depends on prior navigation
// state. A path is admin when any segment matches a marker.
func Classify(path string) Shell {
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if _, ok := adminMarkers[seg]; ok {
			return ShellAdmin
		}
	}
	return ShellPublic
}

// FloatingCTA describes the public shell's booking call-to-action. It only
// becomes visible once the viewport has scrolled past ThresholdPx and hides
// again when scrolled back above the threshold; the client script reads
// these values off data attributes.
type FloatingCTA struct {
	Label       string
	Href        string
	ThresholdPx int
}

// DefaultCTAThresholdPx is the scroll distance after which the floating CTA
// appears.
const DefaultCTAThresholdPx = 480
