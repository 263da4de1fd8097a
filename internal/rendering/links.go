package rendering

import "strings"

const (
	doiMarker    = "doi.org/"
	githubMarker = "github.com/"
)

// FormatLink renders a work's DOI or URL as a hyperlink. DOIs and GitHub
// paths are shortened behind a label; anything else links to itself.
func FormatLink(value string) string {
	if value == "" {
		return ""
	}
	if i := strings.Index(value, doiMarker); i >= 0 {
		short := value[i+len(doiMarker):]
		return link("https://www.doi.org/"+short, "DOI: <u>"+EscapeMarkup(short)+" </u>")
	}
	if i := strings.Index(value, githubMarker); i >= 0 {
		short := value[i+len(githubMarker):]
		return link("https://www.github.com/"+short, "GitHub: <u>"+EscapeMarkup(short)+" </u>")
	}
	return link(value, "<u>"+EscapeMarkup(value)+" </u>")
}

func link(href, label string) string {
	return `<link href="` + EscapeMarkup(href) + `">` + label + "</link>"
}
