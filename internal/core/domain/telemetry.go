package domain

const (
	// SpanGenerate names the span covering one generation pass.
	SpanGenerate = "sprite.generate"
	// SpanIcon names the span covering the processing of one icon file.
	SpanIcon = "sprite.icon"

	// AttrIconPath is the span attribute holding the icon path.
	AttrIconPath = "icon.path"
	// AttrSymbolCount is the span attribute holding the number of symbols in a pass.
	AttrSymbolCount = "sprite.symbols"
)
