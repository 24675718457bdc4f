package query

import (
	"reflect"
	"testing"

	"github.com/m3rciful/namebot/bot/catalog"
)

func TestBuildEmptySelection(t *testing.T) {
	p := Build(nil)
	if !p.IsEmpty() {
		t.Fatalf("empty selection must build an unconstrained predicate, got %+v", p)
	}
	p = Build([]string{})
	if !p.IsEmpty() {
		t.Fatalf("empty slice must build an unconstrained predicate, got %+v", p)
	}
}

func TestBuildSingleGender(t *testing.T) {
	p := Build([]string{catalog.KeyGenderBoy})
	if !reflect.DeepEqual(p.Genders, []string{"boy"}) {
		t.Fatalf("genders = %v, expected [boy]", p.Genders)
	}
	if len(p.Categories) != 0 {
		t.Fatalf("unexpected category restriction: %v", p.Categories)
	}
	if !reflect.DeepEqual(p.ExcludeCategories, RareCategories) {
		t.Fatalf("exclude = %v, expected %v", p.ExcludeCategories, RareCategories)
	}
}

func TestBuildBothGendersCancel(t *testing.T) {
	p := Build([]string{catalog.KeyGenderBoy, catalog.KeyGenderGirl})
	if len(p.Genders) != 0 {
		t.Fatalf("two selected genders must cancel out, got %v", p.Genders)
	}
}

func TestBuildOriginsCollected(t *testing.T) {
	p := Build([]string{catalog.KeyEuropean, catalog.KeyArabian})
	if !reflect.DeepEqual(p.Origins, []string{"european", "arabian"}) {
		t.Fatalf("origins = %v", p.Origins)
	}
}

func TestBuildRareSwitchesCategoryBranch(t *testing.T) {
	with := Build([]string{catalog.KeyRare})
	if !reflect.DeepEqual(with.Categories, RareCategories) {
		t.Fatalf("rare selection: categories = %v, expected %v", with.Categories, RareCategories)
	}
	if len(with.ExcludeCategories) != 0 {
		t.Fatalf("rare selection must not exclude categories, got %v", with.ExcludeCategories)
	}

	without := Build([]string{catalog.KeyEuropean})
	if len(without.Categories) != 0 {
		t.Fatalf("non-rare selection must not restrict categories, got %v", without.Categories)
	}
	if !reflect.DeepEqual(without.ExcludeCategories, RareCategories) {
		t.Fatalf("non-rare selection: exclude = %v, expected %v", without.ExcludeCategories, RareCategories)
	}
}

func TestBuildNeverBothCategoryBranches(t *testing.T) {
	selections := [][]string{
		{catalog.KeyRare},
		{catalog.KeyRare, catalog.KeyGenderGirl, catalog.KeyEastern},
		{catalog.KeyGenderBoy},
		{catalog.KeyCaucasian, catalog.KeyEuropean},
	}
	for _, keys := range selections {
		p := Build(keys)
		if len(p.Categories) > 0 && len(p.ExcludeCategories) > 0 {
			t.Fatalf("selection %v built both category branches: %+v", keys, p)
		}
	}
}

func TestByCategory(t *testing.T) {
	p := ByCategory("topPopular")
	if !reflect.DeepEqual(p.Categories, []string{"topPopular"}) {
		t.Fatalf("categories = %v", p.Categories)
	}
	if len(p.Genders) != 0 || len(p.Origins) != 0 || len(p.ExcludeCategories) != 0 {
		t.Fatalf("category predicate carries extra clauses: %+v", p)
	}
}
