package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/oopconcepts/internal/progress"
	"github.com/ziadkadry99/oopconcepts/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Export the site as static HTML",
	Long: `Writes every page, the assets and a client-side search index to a
directory that any static host can serve. Demos render in their initial
state; their controls need the live server.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().String("output", "", "override output directory (defaults to output_dir)")
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	siteCmd.Flags().Int("port", 8080, "port for the local preview server")
	siteCmd.Flags().Bool("open", false, "open browser automatically when serving")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	_, holder, err := loadContent(cfg)
	if err != nil {
		return err
	}
	renderer, err := site.NewRenderer(holder, cfg.SiteOptions(true))
	if err != nil {
		return err
	}

	generator := site.NewSiteGenerator(holder, renderer, outputDir)
	generator.Reporter = progress.NewReporter("Exporting")
	pageCount, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Static site generated: %s (%d pages)\n", outputDir, pageCount)

	if serve, _ := cmd.Flags().GetBool("serve"); serve {
		port, _ := cmd.Flags().GetInt("port")
		openBrowser, _ := cmd.Flags().GetBool("open")
		if err := site.Serve(outputDir, port, openBrowser); err != nil {
			return fmt.Errorf("serving site: %w", err)
		}
	}
	return nil
}
