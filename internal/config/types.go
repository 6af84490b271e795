package config

import "time"

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = ".oopconcepts.yml"

// EnvPrefix prefixes environment overrides, e.g. OOPCONCEPTS_PORT.
const EnvPrefix = "OOPCONCEPTS_"

// Config is the top-level configuration, corresponding to .oopconcepts.yml.
type Config struct {
	Port            int           `yaml:"port" koanf:"port"`
	SiteTitle       string        `yaml:"site_title" koanf:"site_title"`
	ContentDir      string        `yaml:"content_dir" koanf:"content_dir"` // empty means the built-in content
	Include         []string      `yaml:"include" koanf:"include"`
	Exclude         []string      `yaml:"exclude" koanf:"exclude"`
	OutputDir       string        `yaml:"output_dir" koanf:"output_dir"`
	HighlightStyle  string        `yaml:"highlight_style" koanf:"highlight_style"`
	DefaultLanguage string        `yaml:"default_language" koanf:"default_language"`
	RunDelay        time.Duration `yaml:"run_delay" koanf:"run_delay"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Watch           bool          `yaml:"watch" koanf:"watch"`
	WatchDebounce   time.Duration `yaml:"watch_debounce" koanf:"watch_debounce"`
	SearchDB        string        `yaml:"search_db" koanf:"search_db"`
}
