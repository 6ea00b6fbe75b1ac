package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/syssam/blueprint/compiler/gen"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		zipPath string
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "generate <schema>",
		Short: "Write migrations and models for a schema document",
		Example: `  blueprint generate schema.json --out ./laravel
  blueprint generate schema.yaml --zip bundle.zip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := a.models(args[0])
			if err != nil {
				return err
			}
			start := time.Now()
			if zipPath != "" {
				cfg, err := a.genConfig("")
				if err != nil {
					return err
				}
				out, err := output(cmd, zipPath)
				if err != nil {
					return err
				}
				w := gen.NewWriter(cfg)
				if err := w.WriteZip(cmd.Context(), models, out); err != nil {
					out.Close()
					return err
				}
				if err := out.Close(); err != nil {
					return err
				}
				return summary(cmd, w.Metrics(), zipPath, time.Since(start))
			}
			var opts []gen.Option
			if force {
				opts = append(opts, gen.WithForce())
			}
			cfg, err := a.genConfig(a.settings.Out, opts...)
			if err != nil {
				return err
			}
			w := gen.NewWriter(cfg)
			if err := w.WriteDir(cmd.Context(), models); err != nil {
				return err
			}
			return summary(cmd, w.Metrics(), a.settings.Out, time.Since(start))
		},
	}
	cmd.Flags().StringVarP(&a.out, "out", "o", ".", "Laravel project root to write into (env BLUEPRINT_OUT)")
	cmd.Flags().StringVar(&zipPath, "zip", "", "write a zip archive instead of a directory tree")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite files that already exist under --out")
	cmd.MarkFlagsMutuallyExclusive("out", "zip")
	cmd.MarkFlagsMutuallyExclusive("force", "zip")
	return cmd
}

func summary(cmd *cobra.Command, m gen.WriterMetrics, dest string, elapsed time.Duration) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "generated %d files (%d bytes) into %s in %s\n",
		m.FilesGenerated, m.TotalBytes, dest, elapsed.Round(time.Millisecond))
	return err
}
