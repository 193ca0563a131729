package shell

// Link is one entry of the top navigation.
type Link struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

var links = []Link{
	{Label: "Home", Path: "/"},
	{Label: "New Inspection", Path: "/new-inspection"},
	{Label: "Property Reports", Path: "/reports"},
	{Label: "Regulator View", Path: "/regulator"},
	{Label: "About", Path: "/about"},
}

// NotFoundPath is the catch-all route rendered for unknown paths.
const NotFoundPath = "*"

// Navigation returns the ordered navigation links.
func Navigation() []Link {
	return append([]Link(nil), links...)
}

// Resolve reports whether path is a known dashboard route. Unknown paths
// resolve to NotFoundPath.
func Resolve(path string) (Link, bool) {
	for _, l := range links {
		if l.Path == path {
			return l, true
		}
	}
	return Link{Label: "Not Found", Path: NotFoundPath}, false
}
