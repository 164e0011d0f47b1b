package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/jqlkit/internal/catalog"
)

// SaveReport is the save command's JSON payload.
type SaveReport struct {
	BatchID string      `json:"batch_id,omitempty"`
	Results []SaveEntry `json:"results"`
}

// SaveEntry is one query's save outcome.
type SaveEntry struct {
	Name     string `json:"name"`
	Revision int64  `json:"revision"`
	Status   string `json:"status"`
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:   "save <path>",
		Short: "Record rendered queries in the catalog",
		Long: `Compile every query definition under path and save the rendered JQL
in the catalog. Queries whose content is unchanged since their latest
revision are left alone; the rest get a new revision under one import
batch. Nothing is saved if any definition fails to compile.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(rootOpts, cmd, args[0], db)
		},
	}

	addDBFlag(cmd, &db)
	return cmd
}

func runSave(opts *RootOptions, cmd *cobra.Command, path, db string) error {
	f := opts.formatter(cmd)

	result, err := requireQueries(opts, f, path)
	if err != nil {
		return err
	}

	store, err := openCatalog(opts, f, db)
	if err != nil {
		return err
	}
	defer store.Close()

	entries := make([]catalog.Entry, 0, len(result.Queries))
	for _, q := range result.Queries {
		entries = append(entries, catalog.Entry{
			Name:        q.Name,
			Description: q.Description,
			JQL:         q.JQL(),
			Fields:      q.Fields,
		})
	}

	batchID, results, err := store.SaveBatch(cmd.Context(), path, entries)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
	}

	report := SaveReport{BatchID: batchID, Results: make([]SaveEntry, 0, len(results))}
	for _, r := range results {
		report.Results = append(report.Results, SaveEntry{
			Name:     r.Name,
			Revision: r.Revision,
			Status:   r.Status.String(),
		})
	}

	if f.JSON() {
		return f.Success(report)
	}
	for _, r := range report.Results {
		f.Textf("%-9s %s@%d", r.Status, r.Name, r.Revision)
	}
	if batchID != "" {
		f.Textf("batch %s", batchID)
	}
	return nil
}
