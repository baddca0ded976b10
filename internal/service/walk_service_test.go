package service

import (
	"errors"
	"testing"

	"nzwalks-api/internal/domain"
)

func TestValidateWalk(t *testing.T) {
	t.Parallel()

	valid := domain.Walk{
		Name:         "Coastal Track",
		LengthKm:     12.5,
		DifficultyID: "d1",
		RegionID:     "r1",
	}

	cases := []struct {
		name   string
		mutate func(*domain.Walk)
		wantOK bool
	}{
		{"valid", func(w *domain.Walk) {}, true},
		{"missing name", func(w *domain.Walk) { w.Name = "" }, false},
		{"zero length", func(w *domain.Walk) { w.LengthKm = 0 }, false},
		{"negative length", func(w *domain.Walk) { w.LengthKm = -1 }, false},
		{"missing difficulty", func(w *domain.Walk) { w.DifficultyID = "" }, false},
		{"missing region", func(w *domain.Walk) { w.RegionID = "" }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			walk := valid
			tc.mutate(&walk)

			err := validateWalk(&walk)
			if tc.wantOK {
				if err != nil {
					t.Fatalf("expected valid walk, got %v", err)
				}
				return
			}
			var verrs *domain.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
		})
	}
}

func TestValidateRegion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		region domain.Region
		wantOK bool
	}{
		{"valid", domain.Region{Code: "TAS", Name: "Tasman"}, true},
		{"missing code", domain.Region{Name: "Tasman"}, false},
		{"code too short", domain.Region{Code: "TA", Name: "Tasman"}, false},
		{"code too long", domain.Region{Code: "TASM", Name: "Tasman"}, false},
		{"missing name", domain.Region{Code: "TAS"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := validateRegion(&tc.region)
			if tc.wantOK {
				if err != nil {
					t.Fatalf("expected valid region, got %v", err)
				}
				return
			}
			var verrs *domain.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
		})
	}
}
