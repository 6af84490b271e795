package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/oopconcepts/internal/server"
	"github.com/ziadkadry99/oopconcepts/internal/session"
	"github.com/ziadkadry99/oopconcepts/internal/site"
	"github.com/ziadkadry99/oopconcepts/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the live site server",
	Long: `Serves the rendered site, the JSON API and the websocket that drives the
interactive demos. With --watch, edits to the content directory are picked
up without a restart.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("watch", false, "reload content when it changes on disk")
	serveCmd.Flags().Bool("open", false, "open the site in a browser")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}
	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		cfg.Watch = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	snap, holder, err := loadContent(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, idx, err := openIndex(ctx, cfg, snap.Registry)
	if err != nil {
		return err
	}
	defer database.Close()

	renderer, err := site.NewRenderer(holder, cfg.SiteOptions(false))
	if err != nil {
		return err
	}
	hub := session.NewHub(holder, renderer, session.Options{AllowAllOrigins: cfg.AllowAllOrigins})
	srv := server.New(server.Config{Port: cfg.Port, AllowAll: cfg.AllowAllOrigins}, holder, renderer, idx, hub)

	if cfg.Watch {
		reloader := watcher.NewReloader(cfg.ContentDir, cfg.ContentOptions(), holder, snap)
		reloader.Index = idx
		reloader.Clients = hub
		fw, err := watcher.Watch(ctx, reloader, cfg.Debounce())
		if err != nil {
			return err
		}
		defer fw.Stop()
		fmt.Fprintf(os.Stderr, "  Watching: %s\n", cfg.ContentDir)
	}

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		srv.Shutdown(context.Background())
	}()

	url := fmt.Sprintf("http://localhost:%d", cfg.Port)
	fmt.Fprintf(os.Stderr, "oopconcepts %s serving %q at %s\n", Version, cfg.SiteTitle, url)
	fmt.Fprintf(os.Stderr, "  Concepts: %d\n", len(snap.Registry.Concepts()))
	fmt.Fprintf(os.Stderr, "  Search: %s\n", database.Path())

	if open, _ := cmd.Flags().GetBool("open"); open {
		go site.OpenBrowser(url)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
