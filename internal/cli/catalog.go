package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/jqlkit/internal/catalog"
)

// addDBFlag registers --db on cmd.
func addDBFlag(cmd *cobra.Command, db *string) {
	cmd.Flags().StringVar(db, "db", "", "catalog database (default: catalog.path)")
}

// openCatalog opens the catalog named by --db or the configuration.
func openCatalog(opts *RootOptions, f *OutputFormatter, db string) (*catalog.Store, error) {
	if db == "" {
		db = opts.settings().Catalog.Path
	}
	if db == "" {
		return nil, f.Fail(ExitCommandError, ErrCodeUsage, "no catalog: pass --db or set catalog.path", nil)
	}

	store, err := catalog.Open(db, catalog.WithLogger(opts.logger()))
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
	}
	opts.logger().Debug("opened catalog", "path", db)
	return store, nil
}

// CatalogEntry is a revision in list and history output.
type CatalogEntry struct {
	Name        string   `json:"name"`
	Revision    int64    `json:"revision"`
	Description string   `json:"description,omitempty"`
	JQL         string   `json:"jql"`
	Fields      []string `json:"fields,omitempty"`
	Hash        string   `json:"hash"`
	BatchID     string   `json:"batch_id"`
	Source      string   `json:"source"`
	SavedAt     string   `json:"saved_at"`
}

func catalogEntry(r catalog.Revision) CatalogEntry {
	return CatalogEntry{
		Name:        r.Name,
		Revision:    r.Revision,
		Description: r.Description,
		JQL:         r.JQL,
		Fields:      r.Fields,
		Hash:        r.Hash,
		BatchID:     r.BatchID,
		Source:      r.Source,
		SavedAt:     r.SavedAt.UTC().Format(time.RFC3339),
	}
}
