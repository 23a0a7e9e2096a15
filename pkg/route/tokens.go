package route

// Tokens is the reserved URL vocabulary recognized by the resolver.
type Tokens struct {
	NewStreet         string
	NewStreetCopyLast string
	JustSignedIn      string
	Error             string
	GlobalGallery     string
	Help              string
	About             string
	NoUser            string
	ReservedPrefix    byte
}

// DefaultTokens returns the vocabulary used by the web client.
func DefaultTokens() Tokens {
	return Tokens{
		NewStreet:         "new",
		NewStreetCopyLast: "copy-last",
		JustSignedIn:      "just-signed-in",
		Error:             "error",
		GlobalGallery:     "gallery",
		Help:              "help",
		About:             "about",
		NoUser:            "-",
		ReservedPrefix:    '~',
	}
}

// Reserved lists the tokens a creator id must not be confused with.
// A creator id equal to one of them is written with the reserved prefix.
func (t Tokens) Reserved() []string {
	return []string{
		t.NewStreet,
		t.NewStreetCopyLast,
		t.JustSignedIn,
		t.Error,
		t.GlobalGallery,
		t.Help,
		t.NoUser,
	}
}

// IsReserved reports whether segment collides with a reserved token.
func (t Tokens) IsReserved(segment string) bool {
	for _, r := range t.Reserved() {
		if r != "" && r == segment {
			return true
		}
	}
	return false
}

// WithDefaults fills empty fields from DefaultTokens so partial overrides
// from configuration keep the rest of the vocabulary intact.
func (t Tokens) WithDefaults() Tokens {
	d := DefaultTokens()
	if t.NewStreet == "" {
		t.NewStreet = d.NewStreet
	}
	if t.NewStreetCopyLast == "" {
		t.NewStreetCopyLast = d.NewStreetCopyLast
	}
	if t.JustSignedIn == "" {
		t.JustSignedIn = d.JustSignedIn
	}
	if t.Error == "" {
		t.Error = d.Error
	}
	if t.GlobalGallery == "" {
		t.GlobalGallery = d.GlobalGallery
	}
	if t.Help == "" {
		t.Help = d.Help
	}
	if t.About == "" {
		t.About = d.About
	}
	if t.NoUser == "" {
		t.NoUser = d.NoUser
	}
	if t.ReservedPrefix == 0 {
		t.ReservedPrefix = d.ReservedPrefix
	}
	return t
}
