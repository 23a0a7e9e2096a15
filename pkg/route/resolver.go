package route

import (
	"strings"
)

const separator = "/"

// Context holds the parameters extracted while resolving a path.
// A nil field was not set by the matching rule.
type Context struct {
	GalleryUserID *string `json:"galleryUserId,omitempty"`
	ErrorCode     *string `json:"errorCode,omitempty"`
	CreatorID     *string `json:"creatorId,omitempty"`
	NamespacedID  *string `json:"namespacedId,omitempty"`
}

// Result is the outcome of a single resolution.
type Result struct {
	Mode    Mode    `json:"mode"`
	Context Context `json:"context"`
}

// StreetRef identifies the street currently loaded by a client.
// CreatorID is nil for streets made by anonymous users.
type StreetRef struct {
	CreatorID    *string `json:"creatorId"`
	NamespacedID string  `json:"namespacedId"`
	Name         string  `json:"name,omitempty"`
}

// ApplyTo copies the street identity of an existing-street resolution onto
// street. Other modes leave street untouched.
func (r Result) ApplyTo(street *StreetRef) {
	if street == nil || r.Mode != ModeExistingStreet {
		return
	}
	street.CreatorID = nil
	if r.Context.CreatorID != nil {
		id := *r.Context.CreatorID
		street.CreatorID = &id
	}
	if r.Context.NamespacedID != nil {
		street.NamespacedID = *r.Context.NamespacedID
	}
}

// rule is one entry of the dispatch table. extract may be nil.
type rule struct {
	name    string
	match   func(t Tokens, parts []string) bool
	mode    Mode
	extract func(t Tokens, parts []string) Context
}

// rules are evaluated in order and the first match wins.
var rules = []rule{
	{
		name:  "continue",
		match: func(_ Tokens, parts []string) bool { return len(parts) == 1 && parts[0] == "" },
		mode:  ModeContinue,
	},
	{
		name:  "new-street",
		match: func(t Tokens, parts []string) bool { return len(parts) == 1 && parts[0] == t.NewStreet },
		mode:  ModeNewStreet,
	},
	{
		name:  "new-street-copy-last",
		match: func(t Tokens, parts []string) bool { return len(parts) == 1 && parts[0] == t.NewStreetCopyLast },
		mode:  ModeNewStreetCopyLast,
	},
	{
		name:  "just-signed-in",
		match: func(t Tokens, parts []string) bool { return len(parts) == 1 && parts[0] == t.JustSignedIn },
		mode:  ModeJustSignedIn,
	},
	{
		name:  "error",
		match: func(t Tokens, parts []string) bool { return len(parts) >= 1 && parts[0] == t.Error },
		mode:  ModeError,
		extract: func(_ Tokens, parts []string) Context {
			if len(parts) < 2 {
				return Context{}
			}
			return Context{ErrorCode: str(parts[1])}
		},
	},
	{
		name:  "global-gallery",
		match: func(t Tokens, parts []string) bool { return len(parts) == 1 && parts[0] == t.GlobalGallery },
		mode:  ModeGlobalGallery,
	},
	{
		name:  "user-gallery",
		match: func(_ Tokens, parts []string) bool { return len(parts) == 1 && parts[0] != "" },
		mode:  ModeUserGallery,
		extract: func(_ Tokens, parts []string) Context {
			return Context{GalleryUserID: str(parts[0])}
		},
	},
	{
		name: "about",
		match: func(t Tokens, parts []string) bool {
			return len(parts) == 2 && parts[0] == t.Help && parts[1] == t.About
		},
		mode: ModeAbout,
	},
	{
		name: "anonymous-street",
		match: func(t Tokens, parts []string) bool {
			return len(parts) == 2 && parts[0] == t.NoUser && parts[1] != ""
		},
		mode: ModeExistingStreet,
		extract: func(_ Tokens, parts []string) Context {
			return Context{NamespacedID: str(parts[1])}
		},
	},
	{
		name: "existing-street",
		match: func(_ Tokens, parts []string) bool {
			return len(parts) >= 2 && parts[0] != "" && parts[1] != ""
		},
		mode: ModeExistingStreet,
		extract: func(t Tokens, parts []string) Context {
			// A creator id that really starts with the prefix is
			// indistinguishable from an escaped one.
			creator := parts[0]
			if creator[0] == t.ReservedPrefix {
				creator = creator[1:]
			}
			return Context{CreatorID: str(creator), NamespacedID: str(parts[1])}
		},
	},
}

// Resolver maps location paths to modes using a token vocabulary.
type Resolver struct {
	tokens Tokens
}

// NewResolver creates a resolver. Empty token fields fall back to defaults.
func NewResolver(tokens Tokens) *Resolver {
	return &Resolver{tokens: tokens.WithDefaults()}
}

// Tokens returns the vocabulary the resolver matches against.
func (r *Resolver) Tokens() Tokens {
	return r.tokens
}

// Resolve picks exactly one mode for path. It never fails: anything no rule
// recognizes resolves to ModeNotFound.
func (r *Resolver) Resolve(path string) Result {
	parts := Split(path)
	for _, rl := range rules {
		if !rl.match(r.tokens, parts) {
			continue
		}
		res := Result{Mode: rl.mode}
		if rl.extract != nil {
			res.Context = rl.extract(r.tokens, parts)
		}
		return res
	}
	return Result{Mode: ModeNotFound}
}

// RuleName reports which table entry matched path, or "not-found".
func (r *Resolver) RuleName(path string) string {
	parts := Split(path)
	for _, rl := range rules {
		if rl.match(r.tokens, parts) {
			return rl.name
		}
	}
	return "not-found"
}

var defaultResolver = NewResolver(DefaultTokens())

// Resolve resolves path with the default token vocabulary.
func Resolve(path string) Result {
	return defaultResolver.Resolve(path)
}

// Normalize treats an empty path as the root, strips exactly one leading
// separator and every trailing one.
func Normalize(path string) string {
	if path == "" {
		path = separator
	}
	path = strings.TrimPrefix(path, separator)
	return strings.TrimRight(path, separator)
}

// Split normalizes path and splits it on the separator. Interior empty
// segments are kept, so "a//b" yields three parts.
func Split(path string) []string {
	return strings.Split(Normalize(path), separator)
}

func str(s string) *string {
	return &s
}
