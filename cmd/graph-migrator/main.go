// Package main provides the CLI entrypoint for graph-migrator.
//
// graph-migrator is a one-shot batch tool that:
//   - Loads mapping definitions, concept tables, and graphdiffs
//   - Parses a v3 resource export into typed graphs
//   - Transforms each mapped instance into a v4 graph, in parallel
//   - Resolves cross-instance references once all identifiers are stable
//   - Writes per-instance v4 documents, per-model CSVs, and a run manifest
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"graph-migrator/internal/emit"
	"graph-migrator/internal/engine"
	"graph-migrator/internal/manifest"
	"graph-migrator/internal/mapping"
	"graph-migrator/internal/resolve"
	"graph-migrator/internal/transform"
	"graph-migrator/internal/v3"
)

var (
	mappingsDir string
	outputDir   string
	models      []string
	workers     int
	verbose     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "graph-migrator",
		Short: "Migrate v3 resource graphs to the v4 schema",
		Long: "Converts a v3 resource export into v4 resource documents using\n" +
			"externally supplied mapping definitions, preserving referential\n" +
			"integrity across instances.",
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate <v3-data-file>",
		Short: "Run a full v3 to v4 migration",
		Args:  cobra.ExactArgs(1),
		Run:   runMigrate,
	}

	migrateCmd.Flags().StringVarP(&mappingsDir, "mappings", "m", "", "directory holding extracted .mapping files, concept documents, and graphdiffs/")
	migrateCmd.Flags().StringVarP(&outputDir, "output", "o", "./output", "directory to write v4 documents, CSVs, and the manifest")
	migrateCmd.Flags().StringSliceVar(&models, "models", nil, "restrict processing to these v3 model names (default: all mapped models)")
	migrateCmd.Flags().IntVar(&workers, "workers", 0, "transformation worker count (0 = number of CPUs)")
	migrateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "surface per-attribute warnings and debug detail")
	_ = migrateCmd.MarkFlagRequired("mappings")

	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func runMigrate(cmd *cobra.Command, args []string) {
	loaded, err := mapping.LoadDir(mappingsDir)
	if err != nil {
		log.Fatalf("loading mappings: %v", err)
	}

	if diags := mapping.ValidateAll(loaded.Sources); diags.HasErrors() {
		log.Fatalf("invalid mapping definitions: %v", diags.Error())
	} else if verbose {
		for _, w := range diags.Warnings {
			fmt.Fprintln(os.Stderr, "warning:", w.String())
		}
	}

	repo, err := mapping.NewRepository(loaded.Sources, loaded.Concepts)
	if err != nil {
		log.Fatalf("building mapping repository: %v", err)
	}

	fmt.Printf("loaded %d mapping definitions, %d concepts\n", repo.Len(), repo.Concepts().Len())

	instances, err := v3.LoadFile(args[0])
	if err != nil {
		log.Fatalf("loading v3 data: %v", err)
	}

	fmt.Printf("loaded %d v3 resource instances\n", len(instances))

	man := manifest.NewRun()

	selected, err := engine.Select(instances, models, repo, man)
	if err != nil {
		log.Fatalf("selecting instances: %v", err)
	}

	eng := engine.New(repo, transform.NewRegistry(), man)

	provisional, err := eng.TransformAll(context.Background(), selected, workers)
	if err != nil {
		log.Fatalf("transforming instances: %v", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "remap table (%d entries):\n%s",
			eng.Remap().Len(), spew.Sdump(eng.Remap().Snapshot()))
	}

	resolved := resolve.Apply(provisional, eng.Remap(), man)

	report := man.Report()

	files, err := emit.Instances(resolved)
	if err != nil {
		log.Fatalf("serializing instances: %v", err)
	}

	csvs, err := emit.ModelCSV(resolved)
	if err != nil {
		log.Fatalf("serializing CSVs: %v", err)
	}

	files = append(files, csvs...)

	mappings, err := emit.Mappings(repo.Definitions())
	if err != nil {
		log.Fatalf("serializing mappings: %v", err)
	}

	files = append(files, mappings...)

	manifestFile, err := emit.Manifest(report)
	if err != nil {
		log.Fatalf("serializing manifest: %v", err)
	}

	files = append(files, manifestFile)

	if err := emit.WriteFiles(files, outputDir); err != nil {
		log.Fatalf("writing output: %v", err)
	}

	fmt.Printf("migrated %d instances (%d skipped, %d failed, %d warnings) -> %s\n",
		report.Counts.Succeeded, report.Counts.Skipped,
		report.Counts.Failed, report.Counts.Warnings, outputDir)

	if verbose {
		for _, o := range report.Instances {
			for _, w := range o.Warnings {
				fmt.Fprintln(os.Stderr, "warning:", w.String())
			}
		}
	}

	if report.Counts.Failed > 0 {
		os.Exit(1)
	}
}
