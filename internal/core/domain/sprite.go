package domain

// Symbol is the sprite entry generated from one icon file.
type Symbol struct {
	// ID is the generated symbol identifier.
	ID string
	// Path is the absolute path of the source icon.
	Path string
	// Markup is the serialized <symbol> element.
	Markup string
}

// Sprite is the document produced by one generation pass.
type Sprite struct {
	// RootID is the id attribute of the root container.
	RootID string
	// Defs is the concatenated inner content of all hoisted <defs> blocks.
	Defs string
	// Symbols are the icon entries in enumeration order.
	Symbols []Symbol
	// Markup is the serialized document.
	Markup string
	// Version fingerprints Markup.
	Version string
}

// Empty reports whether the sprite holds no symbols.
func (s *Sprite) Empty() bool {
	return s == nil || len(s.Symbols) == 0
}
