package domain

// Manifest is the parsed dependency manifest: the declared dependencies in
// name order.
type Manifest struct {
	// Path is where the manifest was read from, used for violation locations.
	Path string
	// Dependencies lists the declared entries. Empty when no manifest exists.
	Dependencies []DependencyEntry
	// Raw is the manifest's full text, kept for the simple profile's
	// substring scan.
	Raw string
}

// DependencyEntry is one declared dependency as written in the manifest.
type DependencyEntry struct {
	Name string
	// HasFeatureList is true when the entry explicitly enables a feature
	// list, even an empty one.
	HasFeatureList bool
	Features       []string
	// DefaultFeatures mirrors the manifest's default-features switch; true
	// when the entry does not disable default features.
	DefaultFeatures bool
	// Raw is the entry's textual form for detail messages.
	Raw string
}
