package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	repository "github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/archetype"
	"github.com/okian/scout/internal/domain/scale"
	"github.com/okian/scout/internal/domain/similarity"
	"github.com/okian/scout/internal/domain/vector"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleArtifacts(runID string) repository.Artifacts {
	return repository.Artifacts{
		RunID:      runID,
		CreatedAt:  time.Now(),
		Seed:       42,
		Dimensions: []string{"pace", "defense"},
		Scaler: scale.Params{
			Mean: vector.Vector{60, 50},
			Std:  vector.Vector{10, 12},
		},
		Centroids: []vector.Vector{
			{1.5, -0.5},
			{-1.0, 1.2},
		},
		Archetypes: []archetype.Entry{
			{ClusterID: 0, Name: "Explosive Winger", Description: "Pace and dribbling."},
			{ClusterID: 1, Name: "Defensive Center Back", Description: "Strength and positioning."},
		},
		Corpus: []similarity.Player{
			{ID: "p1", Name: "Winger One", Vector: vector.Vector{1.4, -0.4}},
			{ID: "p2", Name: "Stopper Two", Vector: vector.Vector{-0.9, 1.1}},
		},
	}
}

func TestSQLiteStore(t *testing.T) {
	Convey("Given a store on a fresh path", t, func() {
		dir := t.TempDir()
		store := repository.NewSQLiteStore(filepath.Join(dir, "model.db"))
		ctx := context.Background()

		Convey("When loading before anything was saved", func() {
			_, err := store.Load(ctx)

			Convey("Then it should report missing artifacts", func() {
				So(errors.Is(err, repository.ErrNoArtifacts), ShouldBeTrue)
			})
		})

		Convey("When saving and loading a bundle", func() {
			saved := sampleArtifacts("run-1")
			So(store.Save(ctx, saved), ShouldBeNil)

			loaded, err := store.Load(ctx)

			Convey("Then every piece should round-trip", func() {
				So(err, ShouldBeNil)
				So(loaded.RunID, ShouldEqual, "run-1")
				So(loaded.Seed, ShouldEqual, 42)
				So(loaded.Dimensions, ShouldResemble, saved.Dimensions)
				So(loaded.Scaler.Mean, ShouldResemble, saved.Scaler.Mean)
				So(loaded.Scaler.Std, ShouldResemble, saved.Scaler.Std)
				So(loaded.Centroids, ShouldResemble, saved.Centroids)
				So(len(loaded.Archetypes), ShouldEqual, 2)
				So(loaded.Archetypes[0].Name, ShouldEqual, "Explosive Winger")
				So(loaded.Archetypes[1].Centroid, ShouldResemble, saved.Centroids[1])
			})

			Convey("And the corpus should keep its insertion order", func() {
				So(err, ShouldBeNil)
				So(len(loaded.Corpus), ShouldEqual, 2)
				So(loaded.Corpus[0].ID, ShouldEqual, "p1")
				So(loaded.Corpus[1].Name, ShouldEqual, "Stopper Two")
				So(loaded.Corpus[0].Vector, ShouldResemble, saved.Corpus[0].Vector)
			})
		})

		Convey("When saving a second run over the first", func() {
			So(store.Save(ctx, sampleArtifacts("run-1")), ShouldBeNil)
			So(store.Save(ctx, sampleArtifacts("run-2")), ShouldBeNil)

			loaded, err := store.Load(ctx)

			Convey("Then the newer run should fully replace the older one", func() {
				So(err, ShouldBeNil)
				So(loaded.RunID, ShouldEqual, "run-2")
			})

			Convey("And no temporary file should be left behind", func() {
				_, serr := os.Stat(store.Path() + ".tmp")
				So(os.IsNotExist(serr), ShouldBeTrue)
			})
		})

		Convey("When saving an inconsistent bundle", func() {
			bad := sampleArtifacts("run-bad")
			bad.Archetypes = bad.Archetypes[:1]

			err := store.Save(ctx, bad)

			Convey("Then the save should be refused", func() {
				So(errors.Is(err, repository.ErrInconsistentArtifacts), ShouldBeTrue)
			})

			Convey("And the store should stay empty", func() {
				_, lerr := store.Load(ctx)
				So(errors.Is(lerr, repository.ErrNoArtifacts), ShouldBeTrue)
			})
		})
	})
}

func TestArtifactsValidate(t *testing.T) {
	Convey("Given a consistent bundle", t, func() {
		a := sampleArtifacts("run-1")

		Convey("Then validation should pass", func() {
			So(a.Validate(), ShouldBeNil)
		})

		Convey("When a centroid has the wrong dimension", func() {
			a.Centroids[0] = vector.Vector{1, 2, 3}

			Convey("Then validation should fail", func() {
				So(errors.Is(a.Validate(), repository.ErrInconsistentArtifacts), ShouldBeTrue)
			})
		})

		Convey("When a corpus vector has the wrong dimension", func() {
			a.Corpus[1].Vector = vector.Vector{1}

			Convey("Then validation should fail", func() {
				So(errors.Is(a.Validate(), repository.ErrInconsistentArtifacts), ShouldBeTrue)
			})
		})

		Convey("When the scaler dimension disagrees", func() {
			a.Scaler.Mean = vector.Vector{1}
			a.Scaler.Std = vector.Vector{1}

			Convey("Then validation should fail", func() {
				So(errors.Is(a.Validate(), repository.ErrInconsistentArtifacts), ShouldBeTrue)
			})
		})
	})
}
