package catalog

import "movielist/pkg/models"

// GenresToExclude returns every genre id in all that is not in include,
// preserving the catalog order of all. Include ids unknown to the catalog
// are simply ignored. Pure, no I/O.
func GenresToExclude(all []models.Genre, include []int64) []int64 {
	keep := make(map[int64]struct{}, len(include))
	for _, id := range include {
		keep[id] = struct{}{}
	}

	out := make([]int64, 0, len(all))
	for _, g := range all {
		if _, ok := keep[g.ID]; !ok {
			out = append(out, g.ID)
		}
	}
	return out
}
