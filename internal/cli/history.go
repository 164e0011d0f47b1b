package cli

import (
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:           "history <name>",
		Short:         "Show every saved revision of a query",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)

			store, err := openCatalog(rootOpts, f, db)
			if err != nil {
				return err
			}
			defer store.Close()

			revs, err := store.History(cmd.Context(), args[0])
			if err != nil {
				return f.Fail(ExitCommandError, errorCode(err), err.Error(), nil)
			}

			entries := make([]CatalogEntry, 0, len(revs))
			for _, r := range revs {
				entries = append(entries, catalogEntry(r))
			}
			if f.JSON() {
				return f.Success(entries)
			}
			for _, e := range entries {
				f.Textf("%d  %s  %s  %s", e.Revision, e.SavedAt, e.Hash[:12], e.JQL)
			}
			return nil
		},
	}

	addDBFlag(cmd, &db)
	return cmd
}
