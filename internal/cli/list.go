package cli

import (
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List saved queries (latest revision of each)",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)

			store, err := openCatalog(rootOpts, f, db)
			if err != nil {
				return err
			}
			defer store.Close()

			revs, err := store.List(cmd.Context())
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
			}

			entries := make([]CatalogEntry, 0, len(revs))
			for _, r := range revs {
				entries = append(entries, catalogEntry(r))
			}
			if f.JSON() {
				return f.Success(entries)
			}
			for _, e := range entries {
				f.Textf("%s@%d: %s", e.Name, e.Revision, e.JQL)
			}
			return nil
		},
	}

	addDBFlag(cmd, &db)
	return cmd
}
