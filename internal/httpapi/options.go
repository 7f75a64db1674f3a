package httpapi

import (
	"net/http"
	"sort"

	"comfora/core-go/internal/accessory"
	"comfora/core-go/internal/shape"
)

// optionsProjection is the picker-ready view of everything a shopper may
// choose for a given shape. The UI renders it verbatim; the engine stays
// the single owner of the legality rules.
type optionsProjection struct {
	Shape         shape.Shape      `json:"shape"`
	Sections      []sectionOptions `json:"sections"`
	ConsoleZones  []shape.Zone     `json:"console_zones"`
	ConsoleSizes  []string         `json:"console_sizes"`
	ReclinerZones []shape.Zone     `json:"recliner_zones"`
	Lounger       loungerOptions   `json:"lounger"`
}

type sectionOptions struct {
	Tag     shape.Tag `json:"tag"`
	Active  bool      `json:"active"`
	Options []string  `json:"options"`
	Default string    `json:"default"`
}

type loungerOptions struct {
	Sizes       []string `json:"sizes"`
	MaxLoungers int      `json:"max_loungers"`
	Placements  []string `json:"placements"`
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	s := shape.Canonical(r.URL.Query().Get("shape"))
	snap := h.store.Current()

	proj := optionsProjection{
		Shape:         s,
		ConsoleZones:  shape.ActiveZones(s),
		ReclinerZones: shape.ActiveZones(s),
	}

	for _, tag := range shape.AllTags() {
		opts := shape.AllowedSeaterOptions(s, tag)
		proj.Sections = append(proj.Sections, sectionOptions{
			Tag:     tag,
			Active:  shape.IsActive(s, tag),
			Options: opts,
			Default: opts[0],
		})
	}

	for size := range snap.Pricing.ConsoleRates {
		proj.ConsoleSizes = append(proj.ConsoleSizes, size)
	}
	sort.Strings(proj.ConsoleSizes)

	sizes := make([]string, 0, len(snap.Lounger.SizeWidthInches))
	for size := range snap.Lounger.SizeWidthInches {
		sizes = append(sizes, size)
	}
	// Order by width so the picker lists sizes smallest-first.
	sort.Slice(sizes, func(i, j int) bool {
		wi := snap.Lounger.SizeWidthInches[sizes[i]]
		wj := snap.Lounger.SizeWidthInches[sizes[j]]
		if wi != wj {
			return wi < wj
		}
		return sizes[i] < sizes[j]
	})

	maxLoungers := 2
	placements := []string{string(accessory.PlacementLHS), string(accessory.PlacementRHS), string(accessory.PlacementBoth)}
	if s == shape.LShape {
		maxLoungers = 1
		placements = []string{string(accessory.PlacementLHS)}
	}
	proj.Lounger = loungerOptions{
		Sizes:       sizes,
		MaxLoungers: maxLoungers,
		Placements:  placements,
	}

	h.writeJSON(w, http.StatusOK, proj)
}
