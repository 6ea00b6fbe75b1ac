package main

import (
	"github.com/spf13/cobra"

	"github.com/syssam/blueprint/compiler/gen"
)

func (a *app) snapshotCmd() *cobra.Command {
	var (
		pkg  string
		file string
	)
	cmd := &cobra.Command{
		Use:   "snapshot <schema>",
		Short: "Emit the schema as Go source built with the field and edge builders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := a.models(args[0])
			if err != nil {
				return err
			}
			src, err := gen.Snapshot(pkg, models)
			if err != nil {
				return err
			}
			out, err := output(cmd, file)
			if err != nil {
				return err
			}
			if _, err := out.Write(src); err != nil {
				out.Close()
				return err
			}
			return out.Close()
		},
	}
	cmd.Flags().StringVar(&pkg, "package", "schema", "package name of the generated file")
	cmd.Flags().StringVarP(&file, "output", "o", "", "output file (default: stdout)")
	return cmd
}
