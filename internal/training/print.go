package training

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/cluster"
	"github.com/okian/scout/internal/domain/feature"
)

// PrintReport writes a human-readable training summary to w.
func PrintReport(w io.Writer, r *Report) {
	fmt.Fprintf(w, "\nRun: %s  |  Seed: %d  |  Players: %d  |  Skipped: %d  |  Inertia: %.1f  |  Took: %s\n\n",
		r.RunID, r.Seed, r.Players, r.Skipped, r.Inertia, r.Elapsed.Round(0))

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	header := []any{"ID", "ARCHETYPE", "PLAYERS"}
	for _, dim := range feature.Dimensions() {
		header = append(header, strings.ToUpper(dim))
	}
	header = append(header, "EXAMPLES")
	table.Header(header...)

	for _, c := range r.Clusters {
		row := []any{
			strconv.Itoa(c.ClusterID),
			c.Archetype,
			strconv.Itoa(c.Count),
		}
		for _, v := range c.MeanProfile {
			row = append(row, fmt.Sprintf("%.1f", v))
		}
		row = append(row, strings.Join(c.Samples, ", "))
		table.Append(row...)
	}
	table.Render()
}

// PrintArtifacts summarizes a persisted artifact bundle: one row per
// archetype with its centroid in normalized space and the number of corpus
// players assigned to it.
func PrintArtifacts(w io.Writer, a repository.Artifacts) error {
	model := cluster.NewModel(a.Centroids)

	counts := make([]int, model.K())
	for _, p := range a.Corpus {
		id, err := model.Predict(p.Vector)
		if err != nil {
			return err
		}
		counts[id]++
	}

	fmt.Fprintf(w, "\nRun: %s  |  Trained: %s  |  Seed: %d  |  Players: %d  |  Clusters: %d\n\n",
		a.RunID, a.CreatedAt.Format("2006-01-02 15:04:05"), a.Seed, len(a.Corpus), model.K())

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	header := []any{"ID", "ARCHETYPE", "PLAYERS"}
	for _, dim := range a.Dimensions {
		header = append(header, strings.ToUpper(dim))
	}
	table.Header(header...)

	for _, entry := range a.Archetypes {
		row := []any{
			strconv.Itoa(entry.ClusterID),
			entry.Name,
			strconv.Itoa(counts[entry.ClusterID]),
		}
		for _, v := range entry.Centroid {
			row = append(row, fmt.Sprintf("%+.2f", v))
		}
		table.Append(row...)
	}
	table.Render()
	return nil
}
