package recommend

import (
	"sort"

	"offerPilot/domain"
)

// SelectDiverse re-orders scored candidates so the final slots are not
// dominated by a single offer type. Candidates are grouped by offer_type,
// each group sorted by score, groups ordered by their best score, then
// drained round-robin until topN unique vendors are collected.
func SelectDiverse(candidates []domain.ScoredCandidate, topN int) []domain.ScoredCandidate {
	if topN <= 0 || len(candidates) == 0 {
		return []domain.ScoredCandidate{}
	}

	type typeGroup struct {
		offerType domain.OfferType
		members   []domain.ScoredCandidate
	}

	index := make(map[domain.OfferType]*typeGroup)
	groups := make([]*typeGroup, 0)
	for _, c := range candidates {
		g, ok := index[c.OfferType]
		if !ok {
			g = &typeGroup{offerType: c.OfferType}
			index[c.OfferType] = g
			groups = append(groups, g)
		}
		g.members = append(g.members, c)
	}

	for _, g := range groups {
		sort.SliceStable(g.members, func(i, j int) bool {
			return g.members[i].Score > g.members[j].Score
		})
	}

	// order groups by their best candidate
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].members[0].Score > groups[j].members[0].Score
	})

	selected := make([]domain.ScoredCandidate, 0, topN)
	seen := make(map[string]bool)
	cursors := make([]int, len(groups))

	for len(selected) < topN {
		progressed := false
		for gi, g := range groups {
			for cursors[gi] < len(g.members) {
				c := g.members[cursors[gi]]
				cursors[gi]++
				if seen[c.VendorID] {
					continue
				}
				seen[c.VendorID] = true
				selected = append(selected, c)
				progressed = true
				break
			}
			if len(selected) == topN {
				break
			}
		}
		if !progressed {
			break
		}
	}

	return selected
}
