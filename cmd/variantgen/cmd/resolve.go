package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/variantgen/compiler/gen"
	"github.com/syssam/variantgen/compiler/load"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [paths...]",
		Short: "Print the descriptors with their resolved feature flags",
		Long: `Load the descriptor files and print them as a single descriptor file in
which every type carries its resolved configuration: file defaults and
implied options applied, unsupported operators turned off. Loading the
output generates the same code as the input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &load.Config{Paths: a.paths(args), Package: a.opts.Package}
			types, err := cfg.Load()
			if err != nil {
				return err
			}
			buf, err := load.Marshal(types)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(buf)
			return err
		},
	}
}

func newFeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List the feature flags of descriptor files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, f := range gen.AllFeatures {
				if _, err := fmt.Fprintf(out, "%-26s %s\n", f.Name, f.Description); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
