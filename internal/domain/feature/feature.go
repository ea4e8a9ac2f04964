// Package feature maps raw player attribute ratings onto the fixed set of
// style dimensions the clustering model is trained on.
package feature

import (
	"sort"

	"github.com/okian/scout/internal/domain/vector"
)

// dimension groups the raw attributes that average into one style dimension.
// Alias names cover datasets that ship short column headers.
type dimension struct {
	name    string
	attrs   []string
	aliases map[string]string
}

// The six style dimensions, in model order. The order is load-bearing: it
// fixes the layout of every feature vector, scaler and centroid.
var dimensions = []dimension{
	{
		name:  "pace",
		attrs: []string{"movement_acceleration", "movement_sprint_speed"},
		aliases: map[string]string{
			"movement_acceleration": "acceleration",
			"movement_sprint_speed": "sprint_speed",
		},
	},
	{
		name:  "dribbling",
		attrs: []string{"skill_dribbling", "skill_ball_control", "movement_agility", "movement_balance"},
		aliases: map[string]string{
			"skill_dribbling":    "dribbling",
			"skill_ball_control": "ball_control",
			"movement_agility":   "agility",
			"movement_balance":   "balance",
		},
	},
	{
		name:  "creativity",
		attrs: []string{"attacking_short_passing", "skill_long_passing", "mentality_vision", "skill_curve"},
		aliases: map[string]string{
			"attacking_short_passing": "short_passing",
			"skill_long_passing":      "long_passing",
			"mentality_vision":        "vision",
			"skill_curve":             "curve",
		},
	},
	{
		name:  "finishing",
		attrs: []string{"attacking_finishing", "power_shot_power", "mentality_positioning"},
		aliases: map[string]string{
			"attacking_finishing":   "finishing",
			"power_shot_power":      "shot_power",
			"mentality_positioning": "positioning",
		},
	},
	{
		name:  "defense",
		attrs: []string{"mentality_interceptions", "defending_standing_tackle", "defending_sliding_tackle", "mentality_aggression"},
		aliases: map[string]string{
			"mentality_interceptions":   "interceptions",
			"defending_standing_tackle": "standing_tackle",
			"defending_sliding_tackle":  "sliding_tackle",
			"mentality_aggression":      "aggression",
		},
	},
	{
		name:  "physicality",
		attrs: []string{"power_strength", "power_stamina", "power_jumping"},
		aliases: map[string]string{
			"power_strength": "strength",
			"power_stamina":  "stamina",
			"power_jumping":  "jumping",
		},
	},
}

// Dimensions returns the style dimension names in model order.
func Dimensions() []string {
	names := make([]string, len(dimensions))
	for i, d := range dimensions {
		names[i] = d.name
	}
	return names
}

// Count is the fixed feature vector length.
func Count() int {
	return len(dimensions)
}

// RequiredAttributes returns the canonical raw attribute names, sorted.
// Alias column names satisfy the same requirement at the dataset boundary.
func RequiredAttributes() []string {
	var names []string
	for _, d := range dimensions {
		names = append(names, d.attrs...)
	}
	sort.Strings(names)
	return names
}

// Extract builds a feature vector from named raw attributes. Each style
// dimension is the mean of its raw attributes; an attribute may appear under
// its canonical or alias name. A missing attribute fails with a
// ValidationError naming the canonical field. Pure and deterministic.
func Extract(attrs map[string]float64) (vector.Vector, error) {
	out := make(vector.Vector, len(dimensions))
	for i, d := range dimensions {
		var sum float64
		for _, name := range d.attrs {
			val, ok := attrs[name]
			if !ok {
				val, ok = attrs[d.aliases[name]]
			}
			if !ok {
				return nil, &ValidationError{Field: name, Reason: "missing required attribute"}
			}
			sum += val
		}
		out[i] = sum / float64(len(d.attrs))
	}
	return out, nil
}
