// Package content loads concepts and units from YAML into a registry.
//
// A content source is a directory tree holding site.yml, one YAML file per
// concept under topics/, and optional code sample files referenced from
// those topics. The default source is embedded in the binary.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/oopconcepts/internal/registry"
	"github.com/ziadkadry99/oopconcepts/internal/walker"
)

//go:embed site.yml topics samples
var embedded embed.FS

const (
	siteFile   = "site.yml"
	topicsGlob = "topics/**/*.yml"
)

// DefaultLanguage is the highlighter language for samples that name none.
const DefaultLanguage = "java"

// Site holds the site-wide settings from site.yml.
type Site struct {
	Title   string           `yaml:"title"`
	Welcome registry.Welcome `yaml:"welcome"`
}

// Options controls how a source is read.
type Options struct {
	Include         []string // extra include globs for topic files
	Exclude         []string
	DefaultLanguage string
	RunDelay        time.Duration // delay for simulated runs that declare none
}

// Snapshot is one load of a content source.
type Snapshot struct {
	Site     Site
	Registry *registry.Registry
	Files    []walker.FileInfo
}

// Embedded returns the built-in content source.
func Embedded() fs.FS { return embedded }

// Source returns the built-in content when dir is empty, or dir itself.
func Source(dir string) (fs.FS, error) {
	if dir == "" {
		return Embedded(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content: %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

// Load reads and validates every topic in fsys.
func Load(fsys fs.FS, opts Options) (*Snapshot, error) {
	lang := opts.DefaultLanguage
	if lang == "" {
		lang = DefaultLanguage
	}

	files, err := walker.Walk(fsys, walker.WalkerConfig{
		Include: append([]string{siteFile, topicsGlob, "samples/**"}, opts.Include...),
		Exclude: opts.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}

	var site Site
	if err := decodeFile(fsys, siteFile, &site); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var concepts []*registry.Concept
	for _, f := range files {
		if !isTopic(f.RelPath, opts.Include) {
			continue
		}
		var c registry.Concept
		if err := decodeFile(fsys, f.RelPath, &c); err != nil {
			return nil, err
		}
		if err := resolveSamples(fsys, &c, lang); err != nil {
			return nil, fmt.Errorf("content: %s: %w", f.RelPath, err)
		}
		if opts.RunDelay > 0 {
			applyRunDelay(&c, opts.RunDelay)
		}
		concepts = append(concepts, &c)
	}
	if len(concepts) == 0 {
		return nil, fmt.Errorf("content: no topic files found")
	}

	sort.SliceStable(concepts, func(i, j int) bool {
		if concepts[i].Order != concepts[j].Order {
			return concepts[i].Order < concepts[j].Order
		}
		return concepts[i].ID < concepts[j].ID
	})

	reg, err := registry.New(site.Welcome, concepts...)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	return &Snapshot{Site: site, Registry: reg, Files: files}, nil
}

func isTopic(p string, extra []string) bool {
	if !strings.HasSuffix(p, ".yml") && !strings.HasSuffix(p, ".yaml") {
		return false
	}
	if p == siteFile {
		return false
	}
	return walker.MatchesInclude(p, append([]string{topicsGlob}, extra...))
}

// decodeFile strictly decodes one YAML document; unknown keys are errors so
// typos in content surface at load time.
func decodeFile(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("content: reading %s: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("content: parsing %s: %w", name, err)
	}
	return nil
}

// resolveSamples reads sample files into Source and fills in languages.
func resolveSamples(fsys fs.FS, c *registry.Concept, lang string) error {
	for _, u := range c.Units {
		for i := range u.Sections {
			code := u.Sections[i].Code
			if code == nil {
				continue
			}
			if code.File != "" {
				data, err := fs.ReadFile(fsys, path.Clean(code.File))
				if err != nil {
					return fmt.Errorf("unit %s: sample: %w", u.ID, err)
				}
				code.Source = string(data)
				if code.Language == "" {
					code.Language = walker.DetectLanguage(code.File)
				}
			}
			if code.Language == "" {
				code.Language = lang
			}
			code.Source = strings.TrimRight(code.Source, "\n")
			if code.Source == "" {
				return fmt.Errorf("unit %s: section %d: empty code sample", u.ID, i)
			}
		}
	}
	return nil
}

// applyRunDelay sets d on every simulated run that declares no delay.
func applyRunDelay(c *registry.Concept, d time.Duration) {
	for _, u := range c.Units {
		if u.Demo == nil {
			continue
		}
		for i := range u.Demo.Runs {
			if u.Demo.Runs[i].Delay == 0 {
				u.Demo.Runs[i].Delay = d
			}
		}
	}
}
