package dbmapper

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:       "completion <shell>",
		Short:     "Print a completion script for the given shell",
		Long:      "Print a completion script for bash, zsh, fish, or powershell on stdout.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
		Example: `  dbmapper completion bash > /etc/bash_completion.d/dbmapper
  dbmapper completion zsh > "${fpath[1]}/_dbmapper"
  dbmapper completion fish > ~/.config/fish/completions/dbmapper.fish`,
	}
	rootCmd.AddCommand(cmd)
}
