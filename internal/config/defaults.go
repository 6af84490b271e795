package config

import (
	"time"

	"github.com/ziadkadry99/oopconcepts/internal/content"
	"github.com/ziadkadry99/oopconcepts/internal/db"
	"github.com/ziadkadry99/oopconcepts/internal/demo"
	"github.com/ziadkadry99/oopconcepts/internal/site"
	"github.com/ziadkadry99/oopconcepts/internal/watcher"
)

// DefaultExcludes are glob patterns never read as content.
var DefaultExcludes = []string{
	".git/**",
	"**/*.swp",
	"**/*~",
}

// HighlightStyles are offered by the init wizard. Any chroma style name is
// accepted in the file.
var HighlightStyles = []string{"github", "monokai", "dracula", "solarized-light", "vs"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:            8080,
		SiteTitle:       site.DefaultSiteTitle,
		Exclude:         DefaultExcludes,
		OutputDir:       "site",
		HighlightStyle:  site.DefaultHighlightStyle,
		DefaultLanguage: content.DefaultLanguage,
		RunDelay:        demo.DefaultRunDelay,
		WatchDebounce:   watcher.DefaultDelay,
		SearchDB:        db.MemoryPath,
	}
}

// ContentOptions returns the loader options the config describes.
func (c *Config) ContentOptions() content.Options {
	return content.Options{
		Include:         c.Include,
		Exclude:         c.Exclude,
		DefaultLanguage: c.DefaultLanguage,
		RunDelay:        c.RunDelay,
	}
}

// SiteOptions returns the renderer options the config describes.
func (c *Config) SiteOptions(static bool) site.Options {
	return site.Options{
		SiteTitle:      c.SiteTitle,
		HighlightStyle: c.HighlightStyle,
		CodeLanguage:   c.DefaultLanguage,
		Static:         static,
	}
}

// Debounce returns the effective watch debounce delay, never zero.
func (c *Config) Debounce() time.Duration {
	if c.WatchDebounce <= 0 {
		return watcher.DefaultDelay
	}
	return c.WatchDebounce
}
