package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"transform-deps/internal/app"
)

type inspectOptions struct {
	GraphFile string
	Component string
	Filters   []string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the upstream components of a component in both resolution passes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.GraphFile, "graph", "", "Graph file path")
	cmd.Flags().StringVar(&opts.Component, "component", "", "Component to inspect")
	cmd.Flags().StringSliceVar(&opts.Filters, "filter", nil, "Component filter patterns")
	_ = viper.BindPFlag("graph", cmd.Flags().Lookup("graph"))
	_ = viper.BindPFlag("component", cmd.Flags().Lookup("component"))
	_ = viper.BindPFlag("filters", cmd.Flags().Lookup("filter"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		GraphFile: resolveString(cmd, opts.GraphFile, "graph", "graph"),
		Component: resolveString(cmd, opts.Component, "component", "component"),
		Filters:   resolveStrings(cmd, opts.Filters, "filters", "filter"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("component: %s\n", result.Component)
	fmt.Printf("graph pass (%d): %s\n", len(result.BuildDependencies), strings.Join(result.BuildDependencies, ", "))
	fmt.Printf("artifact pass (%d): %s\n", len(result.ArtifactDependencies), strings.Join(result.ArtifactDependencies, ", "))
	if result.MissingFromArtifactPass {
		fmt.Println("component is not part of the artifact pass")
	}
	return nil
}
