package training_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	repository "github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/vector"
	training "github.com/okian/scout/internal/training"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPrintReportAndArtifacts(t *testing.T) {
	Convey("Given a completed training run", t, func() {
		dir := t.TempDir()
		store := repository.NewSQLiteStore(filepath.Join(dir, "model.db"))
		pipeline := training.New(store, training.WithK(2))
		ctx := context.Background()

		report, err := pipeline.Run(ctx, sampleRecords())
		So(err, ShouldBeNil)

		Convey("When rendering the run summary", func() {
			var buf bytes.Buffer
			training.PrintReport(&buf, report)
			out := buf.String()

			Convey("Then it should carry the run id and every cluster's archetype", func() {
				So(out, ShouldContainSubstring, report.RunID)
				So(out, ShouldContainSubstring, "PACE")
				for _, c := range report.Clusters {
					So(out, ShouldContainSubstring, c.Archetype)
				}
			})
		})

		Convey("When rendering the persisted artifacts", func() {
			artifacts, lerr := store.Load(ctx)
			So(lerr, ShouldBeNil)

			var buf bytes.Buffer
			So(training.PrintArtifacts(&buf, artifacts), ShouldBeNil)
			out := buf.String()

			Convey("Then it should summarize each archetype", func() {
				So(out, ShouldContainSubstring, artifacts.RunID)
				for _, entry := range artifacts.Archetypes {
					So(out, ShouldContainSubstring, entry.Name)
				}
			})
		})

		Convey("When a corpus vector does not match the centroid dimensions", func() {
			artifacts, lerr := store.Load(ctx)
			So(lerr, ShouldBeNil)
			artifacts.Corpus[0].Vector = vector.Vector{1, 2}

			Convey("Then rendering the artifacts should fail", func() {
				var buf bytes.Buffer
				So(training.PrintArtifacts(&buf, artifacts), ShouldNotBeNil)
			})
		})
	})
}
