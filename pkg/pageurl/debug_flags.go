package pageurl

import "strings"

const debugPrefix = "debug-"

// DebugFlags are developer toggles serialized into the page URL.
type DebugFlags struct {
	HoverPolygon            bool `json:"hoverPolygon"`
	CanvasRectangles        bool `json:"canvasRectangles"`
	ForceLeftHandTraffic    bool `json:"forceLeftHandTraffic"`
	ForceMetric             bool `json:"forceMetric"`
	ForceUnsupportedBrowser bool `json:"forceUnsupportedBrowser"`
	ForceNonRetina          bool `json:"forceNonRetina"`
	SecretSegments          bool `json:"secretSegments"`
	ForceReadOnly           bool `json:"forceReadOnly"`
	ForceTouch              bool `json:"forceTouch"`
	ForceLiveUpdate         bool `json:"forceLiveUpdate"`
	ForceNoInternet         bool `json:"forceNoInternet"`
	Experimental            bool `json:"experimental"`
}

// flagField binds a URL flag name to its field. The slice order is the
// order flags are written in.
type flagField struct {
	name  string
	field func(f *DebugFlags) *bool
}

var flagFields = []flagField{
	{"hover-polygon", func(f *DebugFlags) *bool { return &f.HoverPolygon }},
	{"canvas-rectangles", func(f *DebugFlags) *bool { return &f.CanvasRectangles }},
	{"force-left-hand-traffic", func(f *DebugFlags) *bool { return &f.ForceLeftHandTraffic }},
	{"force-metric", func(f *DebugFlags) *bool { return &f.ForceMetric }},
	{"force-unsupported-browser", func(f *DebugFlags) *bool { return &f.ForceUnsupportedBrowser }},
	{"force-non-retina", func(f *DebugFlags) *bool { return &f.ForceNonRetina }},
	{"secret-segments", func(f *DebugFlags) *bool { return &f.SecretSegments }},
	{"force-read-only", func(f *DebugFlags) *bool { return &f.ForceReadOnly }},
	{"force-touch", func(f *DebugFlags) *bool { return &f.ForceTouch }},
	{"force-live-update", func(f *DebugFlags) *bool { return &f.ForceLiveUpdate }},
	{"force-no-internet", func(f *DebugFlags) *bool { return &f.ForceNoInternet }},
	{"experimental", func(f *DebugFlags) *bool { return &f.Experimental }},
}

// FlagNames returns every flag name in serialization order.
func FlagNames() []string {
	names := make([]string, len(flagFields))
	for i, ff := range flagFields {
		names[i] = ff.name
	}
	return names
}

// Active returns the names of the set flags in serialization order.
func (f DebugFlags) Active() []string {
	var names []string
	for _, ff := range flagFields {
		if *ff.field(&f) {
			names = append(names, ff.name)
		}
	}
	return names
}

// Set turns on the flag called name. It reports false for unknown names.
func (f *DebugFlags) Set(name string) bool {
	for _, ff := range flagFields {
		if ff.name == name {
			*ff.field(f) = true
			return true
		}
	}
	return false
}

// ParseDebugFlags reads debug-* keys from a query string. Both "?" and "&"
// separate keys, values are ignored and unknown keys are skipped.
func ParseDebugFlags(query string) DebugFlags {
	var flags DebugFlags
	fields := strings.FieldsFunc(query, func(r rune) bool { return r == '?' || r == '&' })
	for _, field := range fields {
		key, _, _ := strings.Cut(field, "=")
		if name, ok := strings.CutPrefix(key, debugPrefix); ok {
			flags.Set(name)
		}
	}
	return flags
}
