package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/feature"
	. "github.com/smartystreets/goconvey/convey"
)

// writeDataset writes a small two-group CSV with every required attribute
// column so the train command can fit two clusters on it. No logger setup
// happens here: the command is expected to bring up its own logging.
func writeDataset(t *testing.T, dir string) string {
	t.Helper()

	attrs := feature.RequiredAttributes()
	header := append([]string{"sofifa_id", "short_name"}, attrs...)

	var sb strings.Builder
	sb.WriteString(strings.Join(header, ","))
	sb.WriteString("\n")
	row := func(id, name string, base, movement float64) {
		fields := []string{id, name}
		for _, attr := range attrs {
			v := base
			if strings.HasPrefix(attr, "movement_") {
				v = movement
			}
			fields = append(fields, fmt.Sprintf("%.0f", v))
		}
		sb.WriteString(strings.Join(fields, ","))
		sb.WriteString("\n")
	}
	row("1", "Fast One", 55, 92)
	row("2", "Fast Two", 57, 94)
	row("3", "Fast Three", 53, 90)
	row("4", "Slow One", 75, 40)
	row("5", "Slow Two", 77, 42)
	row("6", "Slow Three", 73, 38)

	path := filepath.Join(dir, "players.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTrainCommand(t *testing.T) {
	Convey("Given the training CLI", t, func() {
		dir := t.TempDir()
		datasetFile := writeDataset(t, dir)
		artifactsFile := filepath.Join(dir, "scout.db")

		Convey("When running train on a small dataset", func() {
			rootCmd.SetArgs([]string{
				"train",
				"--dataset", datasetFile,
				"--artifacts", artifactsFile,
				"--k", "2",
			})

			Convey("Then the command should succeed and persist loadable artifacts", func() {
				So(rootCmd.Execute(), ShouldBeNil)

				artifacts, err := repository.NewSQLiteStore(artifactsFile).Load(context.Background())
				So(err, ShouldBeNil)
				So(len(artifacts.Centroids), ShouldEqual, 2)
				So(len(artifacts.Corpus), ShouldEqual, 6)
			})
		})

		Convey("When inspecting previously persisted artifacts", func() {
			rootCmd.SetArgs([]string{"train", "--dataset", datasetFile, "--artifacts", artifactsFile, "--k", "2"})
			So(rootCmd.Execute(), ShouldBeNil)

			rootCmd.SetArgs([]string{"inspect", "--artifacts", artifactsFile})

			Convey("Then the command should succeed", func() {
				So(rootCmd.Execute(), ShouldBeNil)
			})
		})

		Convey("When the dataset file does not exist", func() {
			rootCmd.SetArgs([]string{
				"train",
				"--dataset", filepath.Join(dir, "missing.csv"),
				"--artifacts", artifactsFile,
			})

			Convey("Then the command should fail", func() {
				So(rootCmd.Execute(), ShouldNotBeNil)
			})
		})
	})
}
