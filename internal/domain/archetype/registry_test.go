package archetype_test

import (
	"errors"
	"testing"

	archetype "github.com/okian/scout/internal/domain/archetype"
	"github.com/okian/scout/internal/domain/vector"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistry(t *testing.T) {
	Convey("Given a registry built from unordered entries", t, func() {
		registry := archetype.New([]archetype.Entry{
			{ClusterID: 2, Name: "Explosive Winger"},
			{ClusterID: 0, Name: "Creative Playmaker"},
			{ClusterID: 1, Name: "Target Man"},
		})

		Convey("When listing all archetypes", func() {
			all := registry.All()

			Convey("Then entries should come back ordered by cluster id", func() {
				So(len(all), ShouldEqual, 3)
				So(all[0].ClusterID, ShouldEqual, 0)
				So(all[1].ClusterID, ShouldEqual, 1)
				So(all[2].ClusterID, ShouldEqual, 2)
			})
		})

		Convey("When describing a known cluster", func() {
			entry, err := registry.Describe(2)

			Convey("Then it should return the archetype", func() {
				So(err, ShouldBeNil)
				So(entry.Name, ShouldEqual, "Explosive Winger")
			})
		})

		Convey("When describing an unknown cluster", func() {
			_, err := registry.Describe(99)

			Convey("Then it should fail with a not-found error", func() {
				So(errors.Is(err, archetype.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When describing a negative cluster id", func() {
			_, err := registry.Describe(-1)

			Convey("Then it should fail with a not-found error", func() {
				So(errors.Is(err, archetype.ErrNotFound), ShouldBeTrue)
			})
		})
	})

	Convey("Given a registry with non-contiguous cluster ids", t, func() {
		registry := archetype.New([]archetype.Entry{
			{ClusterID: 5, Name: "Defensive Center Back"},
			{ClusterID: 2, Name: "Explosive Winger"},
		})

		Convey("When describing the stored ids", func() {
			winger, err := registry.Describe(2)
			So(err, ShouldBeNil)
			back, berr := registry.Describe(5)
			So(berr, ShouldBeNil)

			Convey("Then each id should resolve to its own entry", func() {
				So(winger.Name, ShouldEqual, "Explosive Winger")
				So(back.Name, ShouldEqual, "Defensive Center Back")
			})
		})

		Convey("When describing an id inside the gap", func() {
			_, err := registry.Describe(3)

			Convey("Then it should fail with a not-found error", func() {
				So(errors.Is(err, archetype.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestDerive(t *testing.T) {
	Convey("Given centroids with recognizable shapes", t, func() {
		// Dimension order: pace, dribbling, creativity, finishing, defense, physicality.
		winger := vector.Vector{2.0, 1.5, 0.3, 0.5, -1.0, -0.2}
		centerBack := vector.Vector{-0.8, -1.0, -0.5, -1.0, 2.0, 1.2}

		Convey("When deriving archetypes for both", func() {
			registry := archetype.Derive([]vector.Vector{winger, centerBack})

			Convey("Then each centroid should get the matching canonical name", func() {
				first, err := registry.Describe(0)
				So(err, ShouldBeNil)
				So(first.Name, ShouldEqual, "Explosive Winger")

				second, err := registry.Describe(1)
				So(err, ShouldBeNil)
				So(second.Name, ShouldEqual, "Defensive Center Back")
			})

			Convey("And no two clusters should share a name", func() {
				seen := make(map[string]bool)
				for _, entry := range registry.All() {
					So(seen[entry.Name], ShouldBeFalse)
					seen[entry.Name] = true
				}
			})
		})

		Convey("When the same centroids arrive in a different order", func() {
			registry := archetype.Derive([]vector.Vector{centerBack, winger})

			Convey("Then the names should follow the centroids", func() {
				first, err := registry.Describe(0)
				So(err, ShouldBeNil)
				So(first.Name, ShouldEqual, "Defensive Center Back")

				second, err := registry.Describe(1)
				So(err, ShouldBeNil)
				So(second.Name, ShouldEqual, "Explosive Winger")
			})
		})

		Convey("When deriving the same centroids twice", func() {
			first := archetype.Derive([]vector.Vector{winger, centerBack})
			second := archetype.Derive([]vector.Vector{winger, centerBack})

			Convey("Then the result should be identical", func() {
				So(second.All(), ShouldResemble, first.All())
			})
		})
	})

	Convey("Given more clusters than canonical archetypes", t, func() {
		centroids := make([]vector.Vector, 8)
		for i := range centroids {
			centroids[i] = vector.Vector{float64(i), 0, 0, 0, 0, 0}
		}

		Convey("When deriving archetypes", func() {
			registry := archetype.Derive(centroids)

			Convey("Then every cluster id should still resolve", func() {
				So(registry.Len(), ShouldEqual, 8)
				for i := 0; i < 8; i++ {
					_, err := registry.Describe(i)
					So(err, ShouldBeNil)
				}
			})
		})
	})
}
