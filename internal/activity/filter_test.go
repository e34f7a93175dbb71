package activity

import (
	"slices"
	"testing"
)

func TestFilter(t *testing.T) {
	lib := Default()

	tests := []struct {
		name    string
		filters Filters
		check   func(Activity) bool
		wantAll bool
	}{
		{
			name:    "defaults match everything",
			filters: DefaultFilters(),
			wantAll: true,
		},
		{
			name:    "query matches name case-insensitively",
			filters: Filters{Query: "YOGA"},
			check:   func(a Activity) bool { return a.ID == "yoga-001" },
		},
		{
			name:    "query matches description",
			filters: Filters{Query: "sunset colors"},
			check:   func(a Activity) bool { return a.ID == "sunset-001" },
		},
		{
			name:    "category",
			filters: Filters{Categories: []Category{CategoryMeal}},
			check:   func(a Activity) bool { return a.Category == CategoryMeal },
		},
		{
			name:    "energy",
			filters: Filters{Energy: EnergyHigh},
			check:   func(a Activity) bool { return a.Energy == EnergyHigh },
		},
		{
			name:    "time of day includes any",
			filters: Filters{TimeOfDay: TimeNight},
			check:   func(a Activity) bool { return a.TimeOfDay == TimeNight || a.TimeOfDay == TimeAny },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(lib, tt.filters)
			if tt.wantAll {
				if len(got) != len(lib) {
					t.Errorf("got %d activities, want %d", len(got), len(lib))
				}
				return
			}
			if len(got) == 0 {
				t.Fatal("no activities matched")
			}
			for _, a := range got {
				if !tt.check(a) {
					t.Errorf("unexpected match %s", a.ID)
				}
			}
		})
	}
}

func TestFilters_Active(t *testing.T) {
	if DefaultFilters().Active() {
		t.Error("default filters should be inactive")
	}
	f := DefaultFilters()
	f.Energy = EnergyLow
	if !f.Active() {
		t.Error("energy filter should be active")
	}
}

func TestSuggest(t *testing.T) {
	lib := Default()
	theme := ThemeByID("wellness-warrior")
	if theme == nil {
		t.Fatal("wellness-warrior theme missing")
	}

	t.Run("themed first then fill", func(t *testing.T) {
		got := Suggest(lib, DefaultFilters(), theme)
		if len(got) != 5 {
			t.Fatalf("got %d suggestions, want 5", len(got))
		}
		themed := 0
		for i, a := range got {
			in := slices.Contains(theme.SuggestedActivities, a.ID)
			if in {
				themed++
				if i >= 3 {
					t.Errorf("themed activity %s at position %d", a.ID, i)
				}
			}
		}
		if themed == 0 || themed > 3 {
			t.Errorf("themed suggestions = %d, want 1..3", themed)
		}
	})

	t.Run("no theme", func(t *testing.T) {
		if got := Suggest(lib, DefaultFilters(), nil); got != nil {
			t.Errorf("got %d suggestions, want none", len(got))
		}
	})

	t.Run("default theme", func(t *testing.T) {
		if got := Suggest(lib, DefaultFilters(), &Theme{ID: DefaultThemeID}); got != nil {
			t.Errorf("got %d suggestions, want none", len(got))
		}
	})

	t.Run("active filters", func(t *testing.T) {
		if got := Suggest(lib, Filters{Query: "walk"}, theme); got != nil {
			t.Errorf("got %d suggestions, want none", len(got))
		}
	})
}

func TestThemes(t *testing.T) {
	themes := Themes()
	if len(themes) != 5 {
		t.Fatalf("got %d themes, want 5", len(themes))
	}
	lib := Default()
	for _, th := range themes {
		for _, id := range th.SuggestedActivities {
			if _, ok := Find(lib, id); !ok {
				t.Errorf("theme %s suggests unknown activity %s", th.ID, id)
			}
		}
	}

	th := ThemeByID(themes[0].ID)
	th.Colors[0] = "mutated"
	if ThemeByID(themes[0].ID).Colors[0] == "mutated" {
		t.Error("ThemeByID returned shared storage")
	}

	if ThemeByID("nope") != nil {
		t.Error("unknown theme id should return nil")
	}
}
