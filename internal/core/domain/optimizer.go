package domain

// OptimizerOptions configures the SVG optimizer. Nil and empty fields fall back
// to DefaultOptimizerOptions when the options are resolved.
type OptimizerOptions struct {
	// Multipass repeats optimization until the output stops changing. It is
	// always forced on.
	Multipass *bool
	// Precision is the number of significant digits kept in numbers; zero keeps all.
	Precision int
	// KeepComments keeps XML comments in the output.
	KeepComments *bool
	// RemoveViewBox drops the viewBox of the icon root.
	RemoveViewBox *bool
	// PreserveAttrPrefixes lists attribute name prefixes that are never removed
	// or rewritten on the icon root.
	PreserveAttrPrefixes []string
	// RemoveAttrs lists attribute names stripped from every element unless they
	// match a preserved prefix.
	RemoveAttrs []string
	// MinifyIDs rewrites element ids to short names.
	MinifyIDs *bool
}

// DefaultOptimizerOptions keeps the coordinate system, the stroke/fill attribute
// families used for CSS theming, and readable ids.
func DefaultOptimizerOptions() OptimizerOptions {
	return OptimizerOptions{
		Multipass:            Bool(true),
		KeepComments:         Bool(false),
		RemoveViewBox:        Bool(false),
		PreserveAttrPrefixes: []string{"stroke", "fill"},
		MinifyIDs:            Bool(false),
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// IsSet reports whether the optional flag is set to true.
func IsSet(b *bool) bool {
	return b != nil && *b
}
