package cli

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/tue-alga/Gridmap-sub002/pkg/pipeline"
)

// completionCommand creates the completion command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for mosaic.

Besides commands and flags, the scripts complete problem files (*.toml) and
coordinate records (*.coords) for run, finalize, validate, inspect and dual,
and the values of --layout, --format and --cache.

  $ source <(mosaic completion bash)
  $ mosaic completion zsh > "${fpath[1]}/_mosaic"
  $ mosaic completion fish > ~/.config/fish/completions/mosaic.fish
  PS> mosaic completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeInputs completes the positional [problem.toml] [grid.coords]
// arguments shared by the commands that read a problem.
func completeInputs(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
	case 1:
		return []string{"coords"}, cobra.ShellCompDirectiveFilterFileExt
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// fixedValues completes a flag from a closed set of values.
func fixedValues(values ...string) cobra.CompletionFunc {
	return cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)
}

func layoutNames() []string {
	names := make([]string, 0, len(pipeline.ValidLayouts))
	for name := range pipeline.ValidLayouts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func formatNames() []string {
	names := make([]string, 0, len(pipeline.ValidFormats))
	for name := range pipeline.ValidFormats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
