package config

// Spritzfile represents the structure of the spritz.yaml configuration file.
type Spritzfile struct {
	Icons       []string      `yaml:"icons"`
	SymbolID    string        `yaml:"symbolId"`
	RootID      string        `yaml:"rootId"`
	Inject      string        `yaml:"inject"`
	PublicDir   string        `yaml:"publicDir"`
	Pages       []string      `yaml:"pages"`
	Output      OutputDTO     `yaml:"output"`
	Optimizer   *OptimizerDTO `yaml:"optimizer"`
	Concurrency int           `yaml:"concurrency"`
	Debounce    string        `yaml:"debounce"`
	Verbose     bool          `yaml:"verbose"`
	Dev         DevDTO        `yaml:"dev"`
}

// OutputDTO represents the sprite file output settings.
type OutputDTO struct {
	FileName string `yaml:"fileName"`
	Dir      string `yaml:"dir"`
}

// OptimizerDTO represents optimizer overrides. Omitted fields keep their defaults.
type OptimizerDTO struct {
	Precision            int      `yaml:"precision"`
	KeepComments         *bool    `yaml:"keepComments"`
	RemoveViewBox        *bool    `yaml:"removeViewBox"`
	PreserveAttrPrefixes []string `yaml:"preserveAttrPrefixes"`
	RemoveAttrs          []string `yaml:"removeAttrs"`
	MinifyIDs            *bool    `yaml:"minifyIds"`
}

// DevDTO represents the dev server settings.
type DevDTO struct {
	Addr string `yaml:"addr"`
}
