package watcher

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ziadkadry99/oopconcepts/internal/content"
	"github.com/ziadkadry99/oopconcepts/internal/registry"
	"github.com/ziadkadry99/oopconcepts/internal/search"
	"github.com/ziadkadry99/oopconcepts/internal/walker"
)

// Indexer rebuilds the search index from a fresh registry.
type Indexer interface {
	Rebuild(ctx context.Context, docs []search.Document) error
}

// Broadcaster tells connected clients to reload.
type Broadcaster interface {
	BroadcastReload() int
}

// Reloader reloads a content directory into a registry holder. A failed load
// leaves the previous registry in place.
type Reloader struct {
	Dir     string
	Options content.Options
	Holder  *registry.Holder
	Index   Indexer     // optional
	Clients Broadcaster // optional

	mu    sync.Mutex
	files []walker.FileInfo
}

// NewReloader returns a reloader whose baseline is snap, the load the server
// started with.
func NewReloader(dir string, opts content.Options, h *registry.Holder, snap *content.Snapshot) *Reloader {
	r := &Reloader{Dir: dir, Options: opts, Holder: h}
	if snap != nil {
		r.files = snap.Files
	}
	return r
}

// Reload loads the directory again. It returns the changed content paths;
// when nothing changed the registry is left alone.
func (r *Reloader) Reload(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := content.Load(os.DirFS(r.Dir), r.Options)
	if err != nil {
		return nil, fmt.Errorf("watcher: reload: %w", err)
	}

	changed := walker.Changed(r.files, snap.Files)
	if len(changed) == 0 {
		return nil, nil
	}
	r.files = snap.Files
	r.Holder.Store(snap.Registry)

	if r.Index != nil {
		if err := r.Index.Rebuild(ctx, search.Documents(snap.Registry)); err != nil {
			log.Printf("watcher: rebuilding search index: %v", err)
		}
	}
	if r.Clients != nil {
		n := r.Clients.BroadcastReload()
		log.Printf("watcher: reloaded %d file(s), notified %d client(s)", len(changed), n)
	}
	return changed, nil
}

// Handler adapts Reload to a ChangeHandler.
func (r *Reloader) Handler(ctx context.Context) ChangeHandler {
	return func(events []ChangeEvent) error {
		_, err := r.Reload(ctx)
		return err
	}
}

// Watch starts a watcher on the reloader's directory. The returned watcher
// must be stopped by the caller.
func Watch(ctx context.Context, r *Reloader, delay time.Duration) (*FileWatcher, error) {
	fw, err := NewFileWatcher(delay)
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}
	if err := fw.AddRecursive(r.Dir); err != nil {
		fw.Stop()
		return nil, fmt.Errorf("watcher: %w", err)
	}
	fw.AddFilter(HiddenFilter)
	fw.AddFilter(ContentFilter)
	fw.AddHandler(r.Handler(ctx))
	fw.Start(ctx)
	return fw, nil
}
