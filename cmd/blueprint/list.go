package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/syssam/blueprint/compiler/gen"
	"github.com/syssam/blueprint/schema"
)

func (a *app) pivotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pivots <schema>",
		Short: "List the pivot tables implied by many-to-many relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := a.models(args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PIVOT TABLE\tMODELS")
			for _, p := range gen.DiscoverPivots(models) {
				fmt.Fprintf(tw, "%s\t%s, %s\n", p.PivotTable, p.Models[0], p.Models[1])
			}
			return tw.Flush()
		},
	}
}

// Sort keys of the models command.
const (
	sortName          = "name"
	sortFields        = "fields"
	sortRelationships = "relationships"
)

func (a *app) modelsCmd() *cobra.Command {
	var (
		search string
		by     string
		desc   bool
	)
	cmd := &cobra.Command{
		Use:   "models <schema>",
		Short: "List the models of the selected project",
		Example: `  blueprint models schema.json --search user
  blueprint models schema.json --sort fields --desc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := a.models(args[0])
			if err != nil {
				return err
			}
			models, err = filterModels(models, search, by, desc)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTABLE\tFIELDS\tRELATIONSHIPS")
			for _, m := range models {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", m.Name, gen.TableName(m), len(m.Fields), len(m.Relationships))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive substring of the model name")
	cmd.Flags().StringVar(&by, "sort", sortName, "sort key: name, fields or relationships")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort in descending order")
	return cmd
}

// filterModels returns the models whose name contains search, ordered by
// the given key. Ties keep document order.
func filterModels(models []*schema.Model, search, by string, desc bool) ([]*schema.Model, error) {
	var compare func(a, b *schema.Model) int
	switch by {
	case sortName, "":
		c := collate.New(language.Und, collate.IgnoreCase)
		compare = func(a, b *schema.Model) int { return c.CompareString(a.Name, b.Name) }
	case sortFields:
		compare = func(a, b *schema.Model) int { return cmp.Compare(len(a.Fields), len(b.Fields)) }
	case sortRelationships:
		compare = func(a, b *schema.Model) int { return cmp.Compare(len(a.Relationships), len(b.Relationships)) }
	default:
		return nil, fmt.Errorf("unknown sort key %q: want name, fields or relationships", by)
	}
	needle := strings.ToLower(search)
	out := make([]*schema.Model, 0, len(models))
	for _, m := range models {
		if strings.Contains(strings.ToLower(m.Name), needle) {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b *schema.Model) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out, nil
}
