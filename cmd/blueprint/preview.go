package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/syssam/blueprint/compiler/gen"
	"github.com/syssam/blueprint/schema"
)

func (a *app) previewCmd() *cobra.Command {
	var (
		modelName string
		kind      string
		pivot     string
	)
	cmd := &cobra.Command{
		Use:   "preview <schema>",
		Short: "Print the generated code of one model or pivot table",
		Example: `  blueprint preview schema.json --model User
  blueprint preview schema.json --model User --kind model
  blueprint preview schema.json --pivot role_user`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := a.models(args[0])
			if err != nil {
				return err
			}
			want, title, err := previewTarget(models, modelName, kind, pivot)
			if err != nil {
				return err
			}
			cfg, err := a.genConfig("")
			if err != nil {
				return err
			}
			files, err := gen.NewWriter(cfg).Files(cmd.Context(), models)
			if err != nil {
				return err
			}
			for _, f := range files {
				if f.Kind == want && f.Title == title {
					_, err := io.WriteString(cmd.OutOrStdout(), f.Content)
					return err
				}
			}
			return fmt.Errorf("no %s file for %q (feature disabled?)", want, title)
		},
	}
	cmd.Flags().StringVarP(&modelName, "model", "m", "", "model name")
	cmd.Flags().StringVarP(&kind, "kind", "k", "migration", "file to print for --model: migration or model")
	cmd.Flags().StringVar(&pivot, "pivot", "", "pivot table name")
	cmd.MarkFlagsOneRequired("model", "pivot")
	cmd.MarkFlagsMutuallyExclusive("model", "pivot")
	return cmd
}

// previewTarget returns the kind and title of the bundle file selected by
// the preview flags.
func previewTarget(models []*schema.Model, modelName, kind, pivot string) (gen.FileKind, string, error) {
	if pivot != "" {
		for _, p := range gen.DiscoverPivots(models) {
			if p.PivotTable == pivot {
				return gen.KindPivot, gen.ClassName(pivot), nil
			}
		}
		return "", "", fmt.Errorf("pivot table %q not found", pivot)
	}
	var m *schema.Model
	for _, c := range models {
		if c.Name == modelName {
			m = c
			break
		}
	}
	if m == nil {
		return "", "", fmt.Errorf("model %q not found", modelName)
	}
	switch kind {
	case "migration":
		return gen.KindMigration, gen.ClassName(gen.TableName(m)), nil
	case "model":
		return gen.KindModel, m.Name, nil
	default:
		return "", "", fmt.Errorf("unknown kind %q: want migration or model", kind)
	}
}
