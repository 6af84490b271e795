package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/ziadkadry99/oopconcepts/internal/config"
	"github.com/ziadkadry99/oopconcepts/internal/content"
	"github.com/ziadkadry99/oopconcepts/internal/db"
	"github.com/ziadkadry99/oopconcepts/internal/registry"
	"github.com/ziadkadry99/oopconcepts/internal/search"
	"github.com/ziadkadry99/oopconcepts/internal/site"
)

// debugf logs only with --verbose.
func debugf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `oopconcepts init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadContent reads the configured content source into a holder.
func loadContent(cfg *config.Config) (*content.Snapshot, *registry.Holder, error) {
	fsys, err := content.Source(cfg.ContentDir)
	if err != nil {
		return nil, nil, err
	}
	snap, err := content.Load(fsys, cfg.ContentOptions())
	if err != nil {
		return nil, nil, err
	}

	source := cfg.ContentDir
	if source == "" {
		source = "built-in content"
	}
	debugf("content: loaded %d concept(s) from %s (%d files)", len(snap.Registry.Concepts()), source, len(snap.Files))

	// A configured site_title wins over the content's own.
	if cfg.SiteTitle == site.DefaultSiteTitle && snap.Site.Title != "" {
		cfg.SiteTitle = snap.Site.Title
	}
	return snap, registry.NewHolder(snap.Registry), nil
}

// openIndex opens the search database and fills it from reg. The caller
// closes the returned DB.
func openIndex(ctx context.Context, cfg *config.Config, reg *registry.Registry) (*db.DB, *search.Index, error) {
	database, err := db.Open(cfg.SearchDB)
	if err != nil {
		return nil, nil, fmt.Errorf("opening search database: %w", err)
	}
	idx := search.NewIndex(database)
	if err := idx.Rebuild(ctx, search.Documents(reg)); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("building search index: %w", err)
	}
	if n, err := idx.Count(ctx); err == nil {
		debugf("search: indexed %d document(s) in %s", n, database.Path())
	}
	return database, idx, nil
}
