package rendering

import (
	"strings"

	"github.com/jonathan/orcid-cv/internal/logger"
	"github.com/jonathan/orcid-cv/internal/orcid"
	"github.com/jonathan/orcid-cv/internal/style"
	"github.com/jonathan/orcid-cv/internal/types"
)

// Embolden wraps the author naming the profile owner in <b> tags. Only
// authors containing the family name are considered. An author must equal
// one of the owner's name variants, ignoring trailing equal-contribution
// markers; one that matches none is left as is and logged.
func Embolden(person types.PersonalInfo, authors []string, log *logger.Logger) []string {
	out := append([]string(nil), authors...)
	if person.FamilyName == "" {
		return out
	}
	variants := nameVariants(person)
	for i, a := range out {
		if !strings.Contains(a, person.FamilyName) {
			continue
		}
		name := strings.TrimRight(a, "* ")
		matched := false
		for _, v := range variants {
			if name == v {
				matched = true
				break
			}
		}
		if !matched {
			logger.OrNop(log).Info("did not embolden", "author", a)
			continue
		}
		out[i] = "<b>" + a + "</b>"
	}
	return out
}

func nameVariants(p types.PersonalInfo) []string {
	var vs []string
	for _, v := range []string{p.FullName, p.ShortName} {
		if v != "" {
			vs = append(vs, v)
		}
	}
	if p.FirstName != "" {
		vs = append(vs, p.FirstName+" "+p.FamilyName)
		vs = append(vs, string([]rune(p.FirstName)[0])+". "+p.FamilyName)
	}
	return vs
}

// AuthorLine formats a work's authors: optionally initialized and
// emboldened, "and " before the last name, comma joined. Lists of two or
// fewer authors produce no author line.
func AuthorLine(authors []string, person types.PersonalInfo, cfg style.Config, log *logger.Logger) string {
	if len(authors) == 0 {
		return ""
	}
	list := make([]string, len(authors))
	for i, a := range authors {
		list[i] = EscapeMarkup(a)
		if cfg.InitializeAuthors {
			list[i] = EscapeMarkup(orcid.Initialize(a))
		}
	}
	if cfg.EmboldenAuthor {
		list = Embolden(person, list, log)
	}
	if len(list) > 1 {
		list[len(list)-1] = "and " + list[len(list)-1]
	}
	if len(list) <= 2 {
		return ""
	}
	return NormalizeHyphens(strings.Join(list, ", "))
}
