package roads

import (
	"strings"

	"github.com/baguioroutes/roadadvisor/pkg"
)

// Index owns the static, append-never collection of road features for the
// lifetime of the process. The feature set is tiny and fixed, so every
// lookup is a plain slice iteration; no spatial index is warranted at this
// scale.
type Index struct {
	features   []RoadFeature
	speedTable SpeedTable
}

func NewIndex(features []RoadFeature, speedTable SpeedTable) *Index {
	return &Index{
		features:   features,
		speedTable: speedTable,
	}
}

func (idx *Index) GetFeatures() []RoadFeature {
	return idx.features
}

func (idx *Index) GetSpeedTable() SpeedTable {
	return idx.speedTable
}

func (idx *Index) Len() int {
	return len(idx.features)
}

// EffectiveSpeedLimit resolves the advisory limit of f against this
// index's speed table.
func (idx *Index) EffectiveSpeedLimit(f RoadFeature) float64 {
	return f.EffectiveSpeedLimit(idx.speedTable)
}

// Suggest returns up to 5 features whose name contains prefix
// (case-insensitive), preserving index order. An empty prefix yields no
// suggestions, not all roads.
func (idx *Index) Suggest(prefix string) []RoadFeature {
	if prefix == "" {
		return nil
	}

	needle := strings.ToLower(prefix)
	matches := make([]RoadFeature, 0, pkg.MAX_SUGGESTIONS)
	for _, f := range idx.features {
		if strings.Contains(strings.ToLower(f.GetName()), needle) {
			matches = append(matches, f)
			if len(matches) == pkg.MAX_SUGGESTIONS {
				break
			}
		}
	}
	return matches
}
