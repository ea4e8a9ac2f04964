// Package main is the entry point for the scout training CLI, which fits
// the player style model from a CSV dataset and inspects persisted artifacts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/scout/internal/adapters/dataset"
	"github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/training"
	"github.com/okian/scout/pkg/logger"
)

var (
	artifactsPath string
	datasetPath   string
	clusters      int
	seed          int64
)

var rootCmd = &cobra.Command{
	Use:   "scout-train",
	Short: "Player style model trainer",
	Long:  "Fit the player style clustering model from a CSV attribute dataset and persist serving artifacts.",
	// The training pipeline logs through the global logger, so every
	// subcommand needs it initialized before its RunE fires.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init()
	},
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the model and persist artifacts",
	RunE:  runTrain,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize persisted artifacts",
	RunE:  runInspect,
}

func runTrain(cmd *cobra.Command, args []string) error {
	records, err := dataset.Load(datasetPath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	pipeline := training.New(repository.NewSQLiteStore(artifactsPath),
		training.WithK(clusters),
		training.WithSeed(seed),
	)
	report, err := pipeline.Run(cmd.Context(), records)
	if err != nil {
		return fmt.Errorf("training run: %w", err)
	}

	training.PrintReport(os.Stdout, report)
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	artifacts, err := repository.NewSQLiteStore(artifactsPath).Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load artifacts: %w", err)
	}
	return training.PrintArtifacts(os.Stdout, artifacts)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&artifactsPath, "artifacts", "models/scout.db", "path to the artifact bundle")

	trainCmd.Flags().StringVar(&datasetPath, "dataset", "data/players.csv", "path to the player attribute CSV")
	trainCmd.Flags().IntVar(&clusters, "k", 6, "number of style clusters to fit")
	trainCmd.Flags().Int64Var(&seed, "seed", 42, "training seed")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
