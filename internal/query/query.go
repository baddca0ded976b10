package query

import (
	"sort"
	"strings"

	"nzwalks-api/internal/domain"
)

const (
	defaultPageNumber = 1
	defaultPageSize   = 1000
)

// Spec carries the raw filter, sort and pagination parameters of a request.
// It is built from untrusted input and normalized before use.
type Spec struct {
	FilterOn    string
	FilterQuery string
	SortBy      string
	Ascending   bool
	PageNumber  int
	PageSize    int
}

// DefaultSpec returns a spec selecting the first page of up to 1000 records
// in stored order.
func DefaultSpec() Spec {
	return Spec{
		Ascending:  true,
		PageNumber: defaultPageNumber,
		PageSize:   defaultPageSize,
	}
}

// Normalize coerces the page parameters into valid ranges. A page number or
// page size below 1 becomes 1, so no spec can produce an unbounded or
// zero-division result.
func (s Spec) Normalize() Spec {
	if s.PageNumber < 1 {
		s.PageNumber = 1
	}
	if s.PageSize < 1 {
		s.PageSize = 1
	}
	return s
}

// field is a queryable walk attribute. A field is filterable when it exposes
// text and sortable when it exposes an ordering; registering them in one
// table keeps the supported set in a single place.
type field struct {
	text func(w *domain.Walk) string
	less func(a, b *domain.Walk) bool
}

// fields enumerates every supported filter/sort field. Lookups are
// case-insensitive on the field name; anything outside this table is a
// deliberate no-op rather than an error.
var fields = map[string]field{
	"name": {
		text: func(w *domain.Walk) string { return w.Name },
		less: func(a, b *domain.Walk) bool { return a.Name < b.Name },
	},
	"description": {
		text: func(w *domain.Walk) string { return w.Description },
	},
	"length": {
		less: func(a, b *domain.Walk) bool { return a.LengthKm < b.LengthKm },
	},
}

func lookupField(name string) (field, bool) {
	f, ok := fields[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// Apply runs the spec over the walk collection in fixed order: filter, then
// sort, then paginate. It is a pure function; the source slice is never
// mutated and repeated calls yield identical output.
func Apply(spec Spec, source []domain.Walk) []domain.Walk {
	spec = spec.Normalize()

	walks := make([]domain.Walk, len(source))
	copy(walks, source)

	walks = filter(spec, walks)
	sortWalks(spec, walks)
	return paginate(spec, walks)
}

func filter(spec Spec, walks []domain.Walk) []domain.Walk {
	if strings.TrimSpace(spec.FilterOn) == "" || strings.TrimSpace(spec.FilterQuery) == "" {
		return walks
	}
	f, ok := lookupField(spec.FilterOn)
	if !ok || f.text == nil {
		return walks
	}

	filtered := walks[:0]
	for i := range walks {
		// substring match on the field value is case-sensitive
		if strings.Contains(f.text(&walks[i]), spec.FilterQuery) {
			filtered = append(filtered, walks[i])
		}
	}
	return filtered
}

func sortWalks(spec Spec, walks []domain.Walk) {
	if strings.TrimSpace(spec.SortBy) == "" {
		return
	}
	f, ok := lookupField(spec.SortBy)
	if !ok || f.less == nil {
		return
	}

	sort.SliceStable(walks, func(i, j int) bool {
		if spec.Ascending {
			return f.less(&walks[i], &walks[j])
		}
		return f.less(&walks[j], &walks[i])
	})
}

func paginate(spec Spec, walks []domain.Walk) []domain.Walk {
	skip := (spec.PageNumber - 1) * spec.PageSize
	if skip >= len(walks) {
		return []domain.Walk{}
	}
	end := skip + spec.PageSize
	if end > len(walks) {
		end = len(walks)
	}
	return walks[skip:end]
}
