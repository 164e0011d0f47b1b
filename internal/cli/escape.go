package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/jqlkit/internal/jql"
)

// NewEscapeCommand creates the escape command.
func NewEscapeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "escape <text>",
		Short: "Quote and escape text as a JQL string literal",
		Example: `  jqlc escape 'release [v2]'
  "release \\[v2\\]"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			escaped := jql.EscapeText(args[0])
			if f.JSON() {
				return f.Success(map[string]string{"text": args[0], "jql": escaped})
			}
			f.Textf("%s", escaped)
			return nil
		},
	}
}
