package dbmapper

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dbmapper/dbmapper/internal/detectors"
)

func init() {
	cmd := &cobra.Command{
		Use:   "detectors",
		Short: "List available detectors",
		Run: func(_ *cobra.Command, _ []string) {
			for _, name := range detectors.Names(detectors.Defaults()) {
				fmt.Println(name)
			}
			plugins := detectors.PluginNames()
			sort.Strings(plugins)
			for _, name := range plugins {
				fmt.Printf("%s (plugin)\n", name)
			}
		},
	}
	rootCmd.AddCommand(cmd)
}
