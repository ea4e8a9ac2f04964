package similarity_test

import (
	"errors"
	"testing"

	similarity "github.com/okian/scout/internal/domain/similarity"
	"github.com/okian/scout/internal/domain/vector"
	. "github.com/smartystreets/goconvey/convey"
)

func buildIndex() *similarity.Index {
	idx, err := similarity.Build([]similarity.Player{
		{ID: "p1", Name: "Lionel Messi", Vector: vector.Vector{0, 0}},
		{ID: "p2", Name: "Neymar Jr", Vector: vector.Vector{1, 0}},
		{ID: "p3", Name: "Sergio Ramos", Vector: vector.Vector{10, 10}},
		{ID: "p4", Name: "Luka Modric", Vector: vector.Vector{2, 0}},
	})
	So(err, ShouldBeNil)
	return idx
}

func TestTopN(t *testing.T) {
	Convey("Given an index over a small corpus", t, func() {
		idx := buildIndex()

		Convey("When querying the three nearest to the origin", func() {
			matches, err := idx.TopN(vector.Vector{0, 0}, 3)

			Convey("Then results should come back in ascending distance order", func() {
				So(err, ShouldBeNil)
				So(len(matches), ShouldEqual, 3)
				So(matches[0].ID, ShouldEqual, "p1")
				So(matches[1].ID, ShouldEqual, "p2")
				So(matches[2].ID, ShouldEqual, "p4")
				So(matches[0].Distance, ShouldBeLessThanOrEqualTo, matches[1].Distance)
				So(matches[1].Distance, ShouldBeLessThanOrEqualTo, matches[2].Distance)
			})
		})

		Convey("When asking for more results than the corpus holds", func() {
			matches, err := idx.TopN(vector.Vector{0, 0}, 100)

			Convey("Then the result should clamp to the corpus size", func() {
				So(err, ShouldBeNil)
				So(len(matches), ShouldEqual, idx.Len())
			})
		})

		Convey("When asking for zero results", func() {
			matches, err := idx.TopN(vector.Vector{0, 0}, 0)

			Convey("Then the result should be empty without error", func() {
				So(err, ShouldBeNil)
				So(len(matches), ShouldEqual, 0)
			})
		})

		Convey("When two entries are equidistant from the query", func() {
			matches, err := idx.TopN(vector.Vector{1.5, 0}, 2)

			Convey("Then insertion order should break the tie", func() {
				So(err, ShouldBeNil)
				So(matches[0].ID, ShouldEqual, "p2")
				So(matches[1].ID, ShouldEqual, "p4")
			})
		})

		Convey("When the query has the wrong dimension", func() {
			_, err := idx.TopN(vector.Vector{1, 2, 3}, 2)

			Convey("Then it should fail with a dimension error", func() {
				var derr *vector.DimensionError
				So(errors.As(err, &derr), ShouldBeTrue)
			})
		})
	})
}

func TestSimilarTo(t *testing.T) {
	Convey("Given an index over a small corpus", t, func() {
		idx := buildIndex()

		Convey("When searching for players similar to a known name", func() {
			matches, err := idx.SimilarTo("messi", 2)

			Convey("Then the player itself should be excluded", func() {
				So(err, ShouldBeNil)
				So(len(matches), ShouldEqual, 2)
				for _, m := range matches {
					So(m.ID, ShouldNotEqual, "p1")
				}
				So(matches[0].ID, ShouldEqual, "p2")
			})
		})

		Convey("When the name matches case-insensitively as a substring", func() {
			player, ok := idx.Find("RAMOS")

			Convey("Then the lookup should succeed", func() {
				So(ok, ShouldBeTrue)
				So(player.ID, ShouldEqual, "p3")
			})
		})

		Convey("When the name matches nothing", func() {
			_, err := idx.SimilarTo("nobody", 2)

			Convey("Then it should fail with a not-found error", func() {
				So(errors.Is(err, similarity.ErrPlayerNotFound), ShouldBeTrue)
			})
		})

		Convey("When the name is blank", func() {
			_, ok := idx.Find("   ")

			Convey("Then the lookup should fail", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}
