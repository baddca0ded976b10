package query

import (
	"reflect"
	"testing"

	"nzwalks-api/internal/domain"
)

func sampleWalks() []domain.Walk {
	return []domain.Walk{
		{ID: "1", Name: "Coastal Track", Description: "Sea views", LengthKm: 12.5},
		{ID: "2", Name: "Alpine Crossing", Description: "High ridge", LengthKm: 19.4},
		{ID: "3", Name: "Forest Loop", Description: "Native bush", LengthKm: 4.2},
		{ID: "4", Name: "River Walk", Description: "Follows the river", LengthKm: 7.8},
		{ID: "5", Name: "Summit Route", Description: "Steep climb", LengthKm: 9.1},
	}
}

func ids(walks []domain.Walk) []string {
	out := make([]string, len(walks))
	for i := range walks {
		out[i] = walks[i].ID
	}
	return out
}

func TestNormalize_CoercesPageParameters(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		spec       Spec
		wantNumber int
		wantSize   int
	}{
		{"zero values", Spec{}, 1, 1},
		{"negative values", Spec{PageNumber: -3, PageSize: -10}, 1, 1},
		{"valid values kept", Spec{PageNumber: 4, PageSize: 25}, 4, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := tc.spec.Normalize()
			if got.PageNumber != tc.wantNumber || got.PageSize != tc.wantSize {
				t.Fatalf("Normalize() = (%d, %d), want (%d, %d)",
					got.PageNumber, got.PageSize, tc.wantNumber, tc.wantSize)
			}
		})
	}
}

func TestApply_FilterByName(t *testing.T) {
	t.Parallel()

	spec := DefaultSpec()
	spec.FilterOn = "Name"
	spec.FilterQuery = "Walk"

	got := Apply(spec, sampleWalks())
	if !reflect.DeepEqual(ids(got), []string{"4"}) {
		t.Fatalf("filter result = %v, want [4]", ids(got))
	}
}

func TestApply_FilterFieldNameCaseInsensitive(t *testing.T) {
	t.Parallel()

	spec := DefaultSpec()
	spec.FilterOn = "nAmE"
	spec.FilterQuery = "Track"

	got := Apply(spec, sampleWalks())
	if !reflect.DeepEqual(ids(got), []string{"1"}) {
		t.Fatalf("filter result = %v, want [1]", ids(got))
	}
}

func TestApply_FilterValueCaseSensitive(t *testing.T) {
	t.Parallel()

	spec := DefaultSpec()
	spec.FilterOn = "name"
	spec.FilterQuery = "track"

	if got := Apply(spec, sampleWalks()); len(got) != 0 {
		t.Fatalf("expected no matches for lowercase query, got %v", ids(got))
	}
}

func TestApply_UnsupportedFilterFieldIsIdentity(t *testing.T) {
	t.Parallel()

	spec := DefaultSpec()
	spec.FilterOn = "Color"
	spec.FilterQuery = "Blue"

	source := sampleWalks()
	got := Apply(spec, source)
	if !reflect.DeepEqual(ids(got), ids(source)) {
		t.Fatalf("unsupported filter field must pass all records, got %v", ids(got))
	}
}

func TestApply_SortByNameReversible(t *testing.T) {
	t.Parallel()

	asc := DefaultSpec()
	asc.SortBy = "name"

	desc := asc
	desc.Ascending = false

	up := Apply(asc, sampleWalks())
	down := Apply(desc, sampleWalks())

	if !reflect.DeepEqual(ids(up), []string{"2", "1", "3", "4", "5"}) {
		t.Fatalf("ascending sort = %v", ids(up))
	}

	for i := range up {
		if up[i].ID != down[len(down)-1-i].ID {
			t.Fatalf("descending sort is not the exact reverse: %v vs %v", ids(up), ids(down))
		}
	}
}

func TestApply_SortByLength(t *testing.T) {
	t.Parallel()

	spec := DefaultSpec()
	spec.SortBy = "Length"

	got := Apply(spec, sampleWalks())
	if !reflect.DeepEqual(ids(got), []string{"3", "4", "5", "1", "2"}) {
		t.Fatalf("length sort = %v", ids(got))
	}
}

func TestApply_UnsupportedSortFieldKeepsOrder(t *testing.T) {
	t.Parallel()

	spec := DefaultSpec()
	spec.SortBy = "Popularity"

	source := sampleWalks()
	got := Apply(spec, source)
	if !reflect.DeepEqual(ids(got), ids(source)) {
		t.Fatalf("unsupported sort field must keep original order, got %v", ids(got))
	}
}

func TestApply_Pagination(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		pageNumber int
		pageSize   int
		want       []string
	}{
		{"first page", 1, 2, []string{"1", "2"}},
		{"last partial page", 3, 2, []string{"5"}},
		{"page beyond collection", 10, 2, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			spec := DefaultSpec()
			spec.PageNumber = tc.pageNumber
			spec.PageSize = tc.pageSize

			got := Apply(spec, sampleWalks())
			if !reflect.DeepEqual(ids(got), tc.want) {
				t.Fatalf("page (%d,%d) = %v, want %v", tc.pageNumber, tc.pageSize, ids(got), tc.want)
			}
		})
	}
}

func TestApply_DoesNotMutateSource(t *testing.T) {
	t.Parallel()

	source := sampleWalks()
	snapshot := sampleWalks()

	spec := DefaultSpec()
	spec.FilterOn = "name"
	spec.FilterQuery = "o"
	spec.SortBy = "length"
	spec.Ascending = false
	spec.PageNumber = 1
	spec.PageSize = 2

	first := Apply(spec, source)
	second := Apply(spec, source)

	if !reflect.DeepEqual(source, snapshot) {
		t.Fatal("Apply mutated its source collection")
	}
	if !reflect.DeepEqual(ids(first), ids(second)) {
		t.Fatalf("repeated calls differ: %v vs %v", ids(first), ids(second))
	}
}
