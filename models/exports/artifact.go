package exports

// Artifact is one rendered quote document ready to hand to a client.
type Artifact struct {
	Content     []byte
	ContentType string
	Filename    string
}

type Format string

const (
	FormatHTML  Format = "html"
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

func IsAllowedFormat(f string) bool {
	switch Format(f) {
	case FormatHTML, FormatExcel, FormatPDF:
		return true
	default:
		return false
	}
}

// Theme is a primary/secondary color pair for the styled document backends.
type Theme struct {
	Primary   string
	Secondary string
}

var themes = map[string]Theme{
	"blue":  {Primary: "#0066CC", Secondary: "#E6F2FF"},
	"gray":  {Primary: "#666666", Secondary: "#F5F5F5"},
	"beige": {Primary: "#8B7355", Secondary: "#FFF8DC"},
}

// ThemeColors resolves a theme name; unrecognized names fall back to blue.
func ThemeColors(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["blue"]
}

// RenderError reports malformed or incomplete price data for the declared
// pricing scheme. It is a recoverable caller error, not a server fault.
type RenderError struct {
	Format Format
	Reason string
}

func (e *RenderError) Error() string {
	return "render " + string(e.Format) + ": " + e.Reason
}
