package pageurl

import (
	"net/url"
	"regexp"
	"strings"

	"streetmix-be/pkg/route"
)

// StreetFormatter turns a street identity into its canonical path.
type StreetFormatter interface {
	StreetPath(street route.StreetRef) string
}

type streetFormatter struct {
	tokens route.Tokens
}

// NewStreetFormatter builds the formatter the web client uses: creator
// (escaped with the reserved prefix when it collides with a reserved token)
// or the no-user token, the namespaced id, then a name slug for owned streets.
func NewStreetFormatter(tokens route.Tokens) StreetFormatter {
	return &streetFormatter{tokens: tokens.WithDefaults()}
}

func (f *streetFormatter) StreetPath(street route.StreetRef) string {
	var b strings.Builder
	b.WriteString("/")

	if street.CreatorID != nil && *street.CreatorID != "" {
		creator := *street.CreatorID
		if f.tokens.IsReserved(creator) {
			b.WriteByte(f.tokens.ReservedPrefix)
		}
		b.WriteString(creator)
	} else {
		b.WriteString(f.tokens.NoUser)
	}

	b.WriteString("/")
	b.WriteString(street.NamespacedID)

	if street.CreatorID != nil && *street.CreatorID != "" {
		if slug := Slug(street.Name); slug != "" {
			b.WriteString("/")
			b.WriteString(url.PathEscape(slug))
		}
	}

	return b.String()
}

var (
	slugDashes  = regexp.MustCompile(`-{2,}`)
	slugInvalid = regexp.MustCompile(`[^\w-]+`)
)

// Slug lowercases name and keeps word characters and single dashes.
func Slug(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
