package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/oopconcepts/internal/registry"
	"github.com/ziadkadry99/oopconcepts/internal/site"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config and content",
	Long: `Loads the config and the content source, validates every concept, unit
and demo, and renders every page once. Exits non-zero on the first problem.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		_, holder, err := loadContent(cfg)
		if err != nil {
			return err
		}
		renderer, err := site.NewRenderer(holder, cfg.SiteOptions(false))
		if err != nil {
			return err
		}

		reg := holder.Load()
		paths := site.Paths(reg)
		for _, p := range paths {
			if _, err := renderer.RenderView(renderer.Router().Resolve(p)); err != nil {
				return fmt.Errorf("rendering %s: %w", p, err)
			}
			debugf("validate: rendered %s", p)
		}

		var units, demos int
		reg.Walk(func(c *registry.Concept, u *registry.ContentUnit) error {
			if u == nil {
				return nil
			}
			units++
			if u.HasDemo() {
				demos++
			}
			return nil
		})

		fmt.Fprintf(cmd.OutOrStdout(), "OK: %d concepts, %d units, %d demos, %d pages\n",
			len(reg.Concepts()), units, demos, len(paths))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
