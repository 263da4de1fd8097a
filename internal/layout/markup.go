// Package layout flows styled tables onto fixed-size pages and draws them
// through a backend. Text uses a small inline markup: <b>, <u>,
// <link href="..."> and <br/>.
package layout

import (
	"strings"

	"golang.org/x/net/html"
)

// Run is a stretch of text sharing one set of inline attributes.
// A Break run carries no text and forces a new line.
type Run struct {
	Text      string
	Bold      bool
	Underline bool
	Link      string
	Break     bool
}

// ParseMarkup splits inline markup into runs. Unknown tags are dropped and
// their text kept; the tokenizer decodes entities.
func ParseMarkup(markup string) []Run {
	var (
		runs  []Run
		bold  int
		under int
		links []string
	)
	emit := func(text string) {
		if text == "" {
			return
		}
		r := Run{Text: text, Bold: bold > 0, Underline: under > 0}
		if len(links) > 0 {
			r.Link = links[len(links)-1]
		}
		if n := len(runs); n > 0 && sameAttrs(runs[n-1], r) {
			runs[n-1].Text += text
			return
		}
		runs = append(runs, r)
	}

	z := html.NewTokenizerFragment(strings.NewReader(markup), "p")
	for {
		switch z.Next() {
		case html.ErrorToken:
			return runs
		case html.TextToken:
			emit(collapseSpace(string(z.Text())))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "br":
				runs = append(runs, Run{Break: true})
			case "b", "strong":
				bold++
			case "u":
				under++
			case "link", "a":
				href := ""
				for hasAttr {
					var key, val []byte
					key, val, hasAttr = z.TagAttr()
					if string(key) == "href" {
						href = string(val)
					}
				}
				links = append(links, href)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "b", "strong":
				if bold > 0 {
					bold--
				}
			case "u":
				if under > 0 {
					under--
				}
			case "link", "a":
				if len(links) > 0 {
					links = links[:len(links)-1]
				}
			}
		}
	}
}

func sameAttrs(a, b Run) bool {
	return !a.Break && !b.Break && a.Bold == b.Bold && a.Underline == b.Underline && a.Link == b.Link
}

// collapseSpace turns any whitespace run into a single space.
func collapseSpace(s string) string {
	if !strings.ContainsAny(s, "\t\n\r") && !strings.Contains(s, "  ") {
		return s
	}
	var sb strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !space {
				sb.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}

