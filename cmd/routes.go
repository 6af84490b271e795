package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/oopconcepts/internal/router"
	"github.com/ziadkadry99/oopconcepts/internal/site"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List every routable path",
	Long:  `Prints each path of the site with the view it resolves to. Concept paths with a default unit show the unit they resolve to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		_, holder, err := loadContent(cfg)
		if err != nil {
			return err
		}

		rt := router.New(holder)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tKIND\tRESOLVES TO")
		for _, p := range site.Paths(holder.Load()) {
			nav := rt.Resolve(p)
			target := ""
			if nav.Path != p {
				target = nav.Path
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", p, nav.Kind, target)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
