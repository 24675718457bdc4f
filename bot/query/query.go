// Package query translates selected filter keys into a structured
// predicate consumed by the data store. It is pure: no store access,
// no session access.
package query

import "github.com/m3rciful/namebot/bot/catalog"

// RareCategories is the fixed category set the "rare" filter narrows to.
// Without "rare" in the selection, these categories are excluded instead;
// the two branches never apply together.
var RareCategories = []string{"rare", "rareUnusual", "classicOld"}

// Predicate describes a names query. A zero Predicate matches everything.
type Predicate struct {
	// Genders holds at most one gender value; two selected genders cancel
	// each other and leave the field empty.
	Genders []string
	// Origins are OR-joined equality clauses.
	Origins []string
	// Categories, when set, restricts to these category values.
	Categories []string
	// ExcludeCategories, when set, rejects these category values.
	// Mutually exclusive with Categories.
	ExcludeCategories []string
}

// IsEmpty reports whether the predicate is unconstrained.
func (p Predicate) IsEmpty() bool {
	return len(p.Genders) == 0 && len(p.Origins) == 0 &&
		len(p.Categories) == 0 && len(p.ExcludeCategories) == 0
}

var genderValues = map[string]string{
	catalog.KeyGenderBoy:  "boy",
	catalog.KeyGenderGirl: "girl",
}

var originValues = map[string]string{
	catalog.KeyEuropean:  "european",
	catalog.KeyEastern:   "eastern",
	catalog.KeyArabian:   "arabian",
	catalog.KeyCaucasian: "caucasian",
}

// Build converts selected filter keys into a Predicate. An empty
// selection yields the unconstrained predicate. A single selected gender
// contributes an equality clause; two genders cancel out. Origins are
// collected as an OR set. The "rare" key switches the category branch.
func Build(keys []string) Predicate {
	if len(keys) == 0 {
		return Predicate{}
	}

	var p Predicate
	var genders []string
	rare := false
	for _, key := range keys {
		if v, ok := genderValues[key]; ok {
			genders = append(genders, v)
			continue
		}
		if v, ok := originValues[key]; ok {
			p.Origins = append(p.Origins, v)
			continue
		}
		if key == catalog.KeyRare {
			rare = true
		}
	}

	if len(genders) == 1 {
		p.Genders = genders
	}
	if rare {
		p.Categories = append([]string(nil), RareCategories...)
	} else {
		p.ExcludeCategories = append([]string(nil), RareCategories...)
	}
	return p
}

// ByCategory returns a predicate matching a single category value.
func ByCategory(category string) Predicate {
	return Predicate{Categories: []string{category}}
}
