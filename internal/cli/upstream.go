package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"transform-deps/internal/app"
)

type upstreamOptions struct {
	GraphFile            string
	Component            string
	Transform            string
	FromAttributes       string
	Filters              []string
	RequiresDependencies bool
	Finalize             bool
	ListSelected         bool
	Owner                string
	OutputDir            string
}

func newUpstreamCommand() *cobra.Command {
	opts := upstreamOptions{}
	cmd := &cobra.Command{
		Use:   "upstream",
		Short: "Compute the upstream artifacts a transform may consume",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpstream(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.GraphFile, "graph", "", "Graph file path")
	cmd.Flags().StringVar(&opts.Component, "component", "", "Component the transform runs on (project::lib, module:group:name:version)")
	cmd.Flags().StringVar(&opts.Transform, "transform", "transform", "Transform name used in reports")
	cmd.Flags().StringVar(&opts.FromAttributes, "from-attributes", "", "Attributes of the variant selected before the transform (k=v,k2=v2)")
	cmd.Flags().StringSliceVar(&opts.Filters, "filter", nil, "Component filter patterns")
	cmd.Flags().BoolVar(&opts.RequiresDependencies, "requires-dependencies", true, "Whether the transform consumes its dependencies")
	cmd.Flags().BoolVar(&opts.Finalize, "finalize", false, "Compute the dependencies eagerly before reading them")
	cmd.Flags().BoolVar(&opts.ListSelected, "selected", false, "List the selected upstream files without computing the dependencies")
	cmd.Flags().StringVar(&opts.Owner, "owner", "", "Project that owns the resolution (project::app)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Directory for the upstream report")

	_ = viper.BindPFlag("graph", cmd.Flags().Lookup("graph"))
	_ = viper.BindPFlag("component", cmd.Flags().Lookup("component"))
	_ = viper.BindPFlag("transform", cmd.Flags().Lookup("transform"))
	_ = viper.BindPFlag("from_attributes", cmd.Flags().Lookup("from-attributes"))
	_ = viper.BindPFlag("filters", cmd.Flags().Lookup("filter"))
	_ = viper.BindPFlag("requires_dependencies", cmd.Flags().Lookup("requires-dependencies"))
	_ = viper.BindPFlag("finalize", cmd.Flags().Lookup("finalize"))
	_ = viper.BindPFlag("selected", cmd.Flags().Lookup("selected"))
	_ = viper.BindPFlag("owner", cmd.Flags().Lookup("owner"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))

	return cmd
}

func runUpstream(ctx context.Context, cmd *cobra.Command, opts upstreamOptions) error {
	service := newAppService()
	result, err := service.Upstream(ctx, app.UpstreamRequest{
		GraphFile:            resolveString(cmd, opts.GraphFile, "graph", "graph"),
		Component:            resolveString(cmd, opts.Component, "component", "component"),
		Transform:            resolveString(cmd, opts.Transform, "transform", "transform"),
		FromAttributes:       resolveString(cmd, opts.FromAttributes, "from_attributes", "from-attributes"),
		Filters:              resolveStrings(cmd, opts.Filters, "filters", "filter"),
		RequiresDependencies: resolveBool(cmd, opts.RequiresDependencies, "requires_dependencies", "requires-dependencies"),
		Finalize:             resolveBool(cmd, opts.Finalize, "finalize", "finalize"),
		ListSelected:         resolveBool(cmd, opts.ListSelected, "selected", "selected"),
		Owner:                resolveString(cmd, opts.Owner, "owner", "owner"),
		OutputDir:            resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}
	if !result.HasDependencies {
		fmt.Printf("%s: transform does not use dependencies (fingerprint %s)\n", result.Component, result.Fingerprint)
		return nil
	}
	fmt.Printf("%s: %d upstream components, %d files, fingerprint %s\n",
		result.Component, len(result.ArtifactDependencies), len(result.Files), result.Fingerprint)
	for _, project := range result.OwningProjects {
		fmt.Printf("- locks %s\n", project)
	}
	for _, task := range result.ProducerTasks {
		fmt.Printf("- producer %s\n", task)
	}
	for _, file := range result.SelectedFiles {
		fmt.Printf("- selected %s\n", file)
	}
	for _, file := range result.Files {
		fmt.Printf("- file %s\n", file)
	}
	return nil
}
