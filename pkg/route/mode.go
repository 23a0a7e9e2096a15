package route

// Mode is the application state selected by a location path.
type Mode int

const (
	ModeNotFound Mode = iota
	ModeContinue
	ModeNewStreet
	ModeNewStreetCopyLast
	ModeJustSignedIn
	ModeError
	ModeGlobalGallery
	ModeUserGallery
	ModeAbout
	ModeExistingStreet
)

var modeNames = map[Mode]string{
	ModeNotFound:          "NOT_FOUND",
	ModeContinue:          "CONTINUE",
	ModeNewStreet:         "NEW_STREET",
	ModeNewStreetCopyLast: "NEW_STREET_COPY_LAST",
	ModeJustSignedIn:      "JUST_SIGNED_IN",
	ModeError:             "ERROR",
	ModeGlobalGallery:     "GLOBAL_GALLERY",
	ModeUserGallery:       "USER_GALLERY",
	ModeAbout:             "ABOUT",
	ModeExistingStreet:    "EXISTING_STREET",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText lets modes travel as their names in JSON and logs.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMode is the inverse of Mode.String. Unknown names map to ModeNotFound.
func ParseMode(name string) Mode {
	for m, n := range modeNames {
		if n == name {
			return m
		}
	}
	return ModeNotFound
}

func (m *Mode) UnmarshalText(text []byte) error {
	*m = ParseMode(string(text))
	return nil
}

// IsGallery reports whether the mode shows a gallery instead of a street.
func (m Mode) IsGallery() bool {
	return m == ModeGlobalGallery || m == ModeUserGallery
}
