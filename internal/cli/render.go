package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/jqlkit/internal/querydef"
)

// RenderedQuery is one query in render output.
type RenderedQuery struct {
	Name   string   `json:"name"`
	JQL    string   `json:"jql"`
	Fields []string `json:"fields,omitempty"`
	Source string   `json:"source"`
}

func renderedQuery(q *querydef.Query) RenderedQuery {
	return RenderedQuery{
		Name:   q.Name,
		JQL:    q.JQL(),
		Fields: q.Fields,
		Source: q.Source,
	}
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Render query definitions to JQL",
		Long: `Load query definitions from a file or directory and print each one
as JQL. Text output is one "name: jql" line per query, in load order.
With --query only the named query is printed, as bare JQL.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(rootOpts, cmd, args[0], name)
		},
	}

	cmd.Flags().StringVarP(&name, "query", "q", "", "render only this query")
	return cmd
}

func runRender(opts *RootOptions, cmd *cobra.Command, path, name string) error {
	f := opts.formatter(cmd)

	result, err := requireQueries(opts, f, path)
	if err != nil {
		return err
	}
	queries, err := selectQueries(f, result, name)
	if err != nil {
		return err
	}

	if f.JSON() {
		out := make([]RenderedQuery, 0, len(queries))
		for _, q := range queries {
			out = append(out, renderedQuery(q))
		}
		return f.Success(out)
	}

	for _, q := range queries {
		if name != "" {
			f.Textf("%s", q.JQL())
			continue
		}
		f.Textf("%s: %s", q.Name, q.JQL())
	}
	return nil
}
