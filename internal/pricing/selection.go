package pricing

import "github.com/tijara/storefront-service/internal/model"

// SelectionSet maps a line-item index (0..quantity-1) to the chosen
// option id per variant id. It is ephemeral client/session state; the
// engine never persists it.
type SelectionSet map[int]map[string]string

// Missing identifies a required variant with no selection at an index.
type Missing struct {
	Index     int    `json:"index"`
	VariantID string `json:"variant_id"`
}

// Reconcile returns a selection set covering exactly indices
// [0, quantity). Indices already present in prev are carried over
// unchanged; new indices are initialized to each variant's default
// option; indices beyond the new bound are dropped. Variants with no
// options are skipped. prev is never mutated.
func Reconcile(prev SelectionSet, variants []model.Variant, quantity int) SelectionSet {
	next := make(SelectionSet, quantity)

	for i := 0; i < quantity; i++ {
		if choices, ok := prev[i]; ok {
			copied := make(map[string]string, len(choices))
			for variantID, optionID := range choices {
				copied[variantID] = optionID
			}
			next[i] = copied
			continue
		}

		choices := make(map[string]string, len(variants))
		for _, v := range variants {
			if opt, ok := v.DefaultOption(); ok {
				choices[v.ID] = opt.ID
			}
		}
		next[i] = choices
	}

	return next
}

// MissingRequired reports every (index, variant) pair where a required
// variant has no selection. An empty result means the selection set is
// submittable. A required variant with zero options is reported at every
// index since it can never be satisfied.
func MissingRequired(sel SelectionSet, variants []model.Variant, quantity int) []Missing {
	var missing []Missing
	for i := 0; i < quantity; i++ {
		choices := sel[i]
		for _, v := range variants {
			if !v.Required {
				continue
			}
			if choices == nil || choices[v.ID] == "" {
				missing = append(missing, Missing{Index: i, VariantID: v.ID})
			}
		}
	}
	return missing
}
