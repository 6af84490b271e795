package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/oopconcepts/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "oopconcepts",
	Short: "Interactive object-oriented programming concepts site",
	Long: `oopconcepts serves a small educational site about object-oriented
programming: concepts, their content units and the interactive demos
embedded in them. It can also export the site as static HTML and expose
the content to AI agents over MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
