package translator

import (
	"fmt"

	"github.com/rahul/geoflow/internal/registry"
	"github.com/rahul/geoflow/internal/workflow"
)

// defaultProximityM is the radius bound when the query says "near" or
// "around" without stating a distance. Part of the proximity intent's
// contract, not a guess: queries that need a different radius state one.
const defaultProximityM = 1000.0

// candidate is one intent that could explain the query. Specificity counts
// the extracted entities the intent consumes; the planner picks the highest
// and treats a tie between different intents as unresolved.
type candidate struct {
	name        string
	specificity int
	build       func(w *workflow.Workflow) error
}

func (t *Translator) candidates(ex Extraction) []candidate {
	var cands []candidate

	// Proximity analysis: "X within D of Y", "X near Y".
	if ex.Proximity && len(ex.Subjects) > 0 && ex.Reference != "" {
		score := 2
		if ex.DistanceM > 0 {
			score++
		}
		if ex.Location != "" {
			score++
		}
		cands = append(cands, candidate{
			name:        "proximity",
			specificity: score,
			build: func(w *workflow.Workflow) error {
				reference := ex.Reference
				if ex.Location != "" {
					reference = w.Append("spatial_filter",
						[]string{ex.Reference},
						map[string]any{"input": ex.Reference, "region": ex.Location})
				}
				distance := ex.DistanceM
				if distance == 0 {
					distance = defaultProximityM
				}
				buffered := w.Append("buffer",
					[]string{reference},
					map[string]any{"input": reference, "distance_m": distance})
				w.Append("spatial_join",
					[]string{ex.Subjects[0], buffered},
					map[string]any{"left": ex.Subjects[0], "right": buffered})
				return nil
			},
		})
	}

	// Density surface: "population density by district".
	if ex.Measure == "density" {
		cands = append(cands, candidate{
			name:        "density",
			specificity: 2,
			build: func(w *workflow.Workflow) error {
				input := pickDataset(ex.Datasets, "census")
				if input == "" {
					return fmt.Errorf("%w: density requires a value dataset (e.g. census data)", registry.ErrIncompleteParameters)
				}
				if ex.GroupBy == "" {
					return fmt.Errorf("%w: density requires zone polygons (e.g. \"by district\")", registry.ErrIncompleteParameters)
				}
				if ex.Location != "" {
					input = w.Append("spatial_filter",
						[]string{input},
						map[string]any{"input": input, "region": ex.Location})
				}
				w.Append("density",
					[]string{input, ex.GroupBy},
					map[string]any{"input": input, "zones": ex.GroupBy})
				return nil
			},
		})
	}

	// Raster classification: "generate land use classification from imagery".
	if ex.Verb == "classify" || ex.Scheme != "" {
		score := 1
		if ex.Scheme != "" {
			score++
		}
		cands = append(cands, candidate{
			name:        "classification",
			specificity: score,
			build: func(w *workflow.Workflow) error {
				input := pickDataset(ex.Datasets, "satellite_imagery", "elevation", "rainfall")
				if input == "" {
					return fmt.Errorf("%w: classification requires a raster input (e.g. satellite imagery)", registry.ErrIncompleteParameters)
				}
				if ex.Scheme == "" {
					return fmt.Errorf("%w: classification requires a scheme (e.g. land use)", registry.ErrIncompleteParameters)
				}
				w.Append("raster_classify",
					[]string{input},
					map[string]any{"input": input, "scheme": ex.Scheme})
				return nil
			},
		})
	}

	// Regional lookup: "find schools in Mumbai", optionally counted or
	// measured.
	if !ex.Proximity && len(ex.Subjects) > 0 && ex.Location != "" && ex.Measure != "density" {
		score := 1
		if ex.Measure != "" {
			score++
		}
		cands = append(cands, candidate{
			name:        "regional_lookup",
			specificity: score,
			build: func(w *workflow.Workflow) error {
				filtered := w.Append("spatial_filter",
					[]string{ex.Subjects[0]},
					map[string]any{"input": ex.Subjects[0], "region": ex.Location})
				switch ex.Measure {
				case "count":
					w.Append("count", []string{filtered}, map[string]any{"input": filtered})
				case "area":
					w.Append("area", []string{filtered}, map[string]any{"input": filtered})
				}
				return nil
			},
		})
	}

	// Bare measurement with no region: "count buildings".
	if !ex.Proximity && len(ex.Subjects) > 0 && ex.Location == "" &&
		(ex.Measure == "count" || ex.Measure == "area") {
		cands = append(cands, candidate{
			name:        "measurement",
			specificity: 1,
			build: func(w *workflow.Workflow) error {
				op := ex.Measure
				w.Append(op, []string{ex.Subjects[0]}, map[string]any{"input": ex.Subjects[0]})
				return nil
			},
		})
	}

	return cands
}

// pickDataset returns the first of the preferred names present in datasets.
func pickDataset(datasets []string, preferred ...string) string {
	for _, want := range preferred {
		for _, have := range datasets {
			if have == want {
				return have
			}
		}
	}
	return ""
}
