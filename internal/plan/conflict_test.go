package plan

import "testing"

func TestDetectConflicts_StartSlot(t *testing.T) {
	tests := []struct {
		name        string
		entries     []ScheduledActivity
		hasConflict bool
		saturday    bool
		sunday      bool
	}{
		{
			name: "empty list",
		},
		{
			name: "under or exactly at capacity",
			entries: []ScheduledActivity{
				testEntry("1", Saturday, Morning, 2),
				testEntry("2", Saturday, Morning, 2),   // 4 = morning capacity
				testEntry("3", Saturday, Afternoon, 5), // 5 = afternoon capacity
			},
		},
		{
			name: "third entry tips the slot over",
			entries: []ScheduledActivity{
				testEntry("1", Saturday, Morning, 2),
				testEntry("2", Saturday, Morning, 2),
				testEntry("3", Saturday, Morning, 1),
			},
			hasConflict: true,
			saturday:    true,
		},
		{
			name: "saturday morning over capacity",
			entries: []ScheduledActivity{
				testEntry("1", Saturday, Morning, 3),
				testEntry("2", Saturday, Morning, 2),
				testEntry("3", Saturday, Afternoon, 1),
			},
			hasConflict: true,
			saturday:    true,
		},
		{
			name: "saturday evening over capacity",
			entries: []ScheduledActivity{
				testEntry("1", Saturday, Evening, 4),
				testEntry("2", Saturday, Evening, 1),
			},
			hasConflict: true,
			saturday:    true,
		},
		{
			name: "sunday only",
			entries: []ScheduledActivity{
				testEntry("1", Sunday, Night, 3),
				testEntry("2", Sunday, Night, 3),
			},
			hasConflict: true,
			sunday:      true,
		},
		{
			name: "same slot on different days never combines",
			entries: []ScheduledActivity{
				testEntry("1", Saturday, Morning, 4),
				testEntry("2", Sunday, Morning, 4),
			},
		},
		{
			name: "long entry only charges its start slot",
			entries: []ScheduledActivity{
				testEntry("1", Saturday, Morning, 4),
				testEntry("2", Saturday, Afternoon, 5),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectConflicts(tt.entries)
			if got.HasConflict != tt.hasConflict {
				t.Errorf("HasConflict = %v, want %v", got.HasConflict, tt.hasConflict)
			}
			if got.Day(Saturday) != tt.saturday {
				t.Errorf("saturday = %v, want %v", got.Day(Saturday), tt.saturday)
			}
			if got.Day(Sunday) != tt.sunday {
				t.Errorf("sunday = %v, want %v", got.Day(Sunday), tt.sunday)
			}
		})
	}
}

func TestDetectConflicts_Overloaded(t *testing.T) {
	entries := []ScheduledActivity{
		testEntry("a", Saturday, Evening, 4),
		testEntry("b", Saturday, Evening, 1),
		testEntry("c", Saturday, Morning, 1),
	}

	got := DetectConflicts(entries)
	if len(got.Overloaded) != 1 {
		t.Fatalf("overloaded buckets = %d, want 1", len(got.Overloaded))
	}
	l := got.Overloaded[0]
	if l.Day != Saturday || l.Slot != Evening {
		t.Errorf("bucket = %s %s, want saturday evening", l.Day, l.Slot)
	}
	if l.Hours != 5 || l.Capacity != 4 {
		t.Errorf("load = %d/%d, want 5/4", l.Hours, l.Capacity)
	}
	if !got.Slot(Saturday, Evening) {
		t.Error("Slot(saturday, evening) = false, want true")
	}
	if got.Slot(Saturday, Morning) {
		t.Error("Slot(saturday, morning) = true, want false")
	}
	if len(got.Pairs) != 1 || got.Pairs[0].A.ID != "a" || got.Pairs[0].B.ID != "b" {
		t.Errorf("pairs = %+v, want [a b]", got.Pairs)
	}
}

func TestDetectConflicts_PairsAllCombinations(t *testing.T) {
	entries := []ScheduledActivity{
		testEntry("1", Sunday, Afternoon, 2),
		testEntry("2", Sunday, Afternoon, 2),
		testEntry("3", Sunday, Afternoon, 2),
	}

	got := DetectConflicts(entries)
	if len(got.Pairs) != 3 {
		t.Fatalf("pairs = %d, want 3", len(got.Pairs))
	}
	want := [][2]string{{"1", "2"}, {"1", "3"}, {"2", "3"}}
	for i, p := range got.Pairs {
		if p.A.ID != want[i][0] || p.B.ID != want[i][1] {
			t.Errorf("pair[%d] = (%s, %s), want (%s, %s)", i, p.A.ID, p.B.ID, want[i][0], want[i][1])
		}
	}
}

func TestDetectConflicts_Spanning(t *testing.T) {
	t.Run("overflow into the next slot", func(t *testing.T) {
		entries := []ScheduledActivity{
			testEntry("long", Saturday, Morning, 6), // spans morning and afternoon
			testEntry("short", Saturday, Afternoon, 1),
		}

		if DetectConflicts(entries).HasConflict {
			t.Error("start-slot mode: expected no conflict")
		}

		got := DetectConflicts(entries, WithMode(ModeSpanning))
		if !got.HasConflict {
			t.Fatal("spanning mode: expected conflict")
		}
		if !got.Slot(Saturday, Afternoon) {
			t.Error("expected saturday afternoon to be overloaded")
		}
		if len(got.Pairs) != 1 {
			t.Fatalf("pairs = %d, want 1", len(got.Pairs))
		}
	})

	t.Run("pairs are not duplicated across slots", func(t *testing.T) {
		entries := []ScheduledActivity{
			testEntry("a", Sunday, Morning, 9), // morning and afternoon
			testEntry("b", Sunday, Morning, 9),
		}

		got := DetectConflicts(entries, WithMode(ModeSpanning))
		if len(got.Overloaded) != 2 {
			t.Fatalf("overloaded buckets = %d, want 2", len(got.Overloaded))
		}
		if len(got.Pairs) != 1 {
			t.Errorf("pairs = %d, want 1", len(got.Pairs))
		}
	})

	t.Run("day isolation", func(t *testing.T) {
		entries := []ScheduledActivity{
			testEntry("a", Saturday, Morning, 9),
			testEntry("b", Sunday, Morning, 9),
		}
		got := DetectConflicts(entries, WithMode(ModeSpanning))
		if len(got.Pairs) != 0 {
			t.Errorf("pairs = %+v, want none", got.Pairs)
		}
	})
}

func TestDetectConflicts_RemovedEntryNeverInPairs(t *testing.T) {
	s := NewSchedule()
	for _, e := range []ScheduledActivity{
		testEntry("x", Saturday, Morning, 3),
		testEntry("y", Saturday, Morning, 3),
		testEntry("z", Saturday, Morning, 3),
	} {
		s, _ = s.Add(e)
	}

	if !DetectConflicts(s.Entries()).Involves("y") {
		t.Fatal("expected y to be involved before removal")
	}

	after := DetectConflicts(RemoveActivity(s, "y").Entries())
	if after.Involves("y") {
		t.Error("removed entry still appears in conflict pairs")
	}
	if !after.HasConflict {
		t.Error("x and z still overflow morning, expected conflict")
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    ScheduledActivity
		b    ScheduledActivity
		want bool
	}{
		{
			name: "same slot",
			a:    testEntry("a", Saturday, Morning, 1),
			b:    testEntry("b", Saturday, Morning, 1),
			want: true,
		},
		{
			name: "different days",
			a:    testEntry("a", Saturday, Morning, 1),
			b:    testEntry("b", Sunday, Morning, 1),
			want: false,
		},
		{
			name: "adjacent slots without spill",
			a:    testEntry("a", Saturday, Morning, 4),
			b:    testEntry("b", Saturday, Afternoon, 1),
			want: false,
		},
		{
			name: "spill into next slot",
			a:    testEntry("a", Saturday, Morning, 5),
			b:    testEntry("b", Saturday, Afternoon, 1),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlotHours(t *testing.T) {
	entries := []ScheduledActivity{
		testEntry("a", Saturday, Morning, 6),
		testEntry("b", Saturday, Afternoon, 2),
		testEntry("c", Sunday, Afternoon, 3),
	}

	tests := []struct {
		name string
		day  Day
		slot Slot
		mode Mode
		want int
	}{
		{name: "start slot morning", day: Saturday, slot: Morning, mode: ModeStartSlot, want: 6},
		{name: "start slot afternoon", day: Saturday, slot: Afternoon, mode: ModeStartSlot, want: 2},
		{name: "spanning afternoon", day: Saturday, slot: Afternoon, mode: ModeSpanning, want: 8},
		{name: "other day", day: Sunday, slot: Afternoon, mode: ModeSpanning, want: 3},
		{name: "empty bucket", day: Sunday, slot: Night, mode: ModeStartSlot, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlotHours(entries, tt.day, tt.slot, tt.mode); got != tt.want {
				t.Errorf("SlotHours() = %d, want %d", got, tt.want)
			}
		})
	}

	if !IsSlotOverCapacity(entries, Saturday, Afternoon, ModeSpanning) {
		t.Error("expected saturday afternoon over capacity in spanning mode")
	}
	if IsSlotOverCapacity(entries, Saturday, Afternoon, ModeStartSlot) {
		t.Error("expected saturday afternoon within capacity in start-slot mode")
	}
}

func TestLoads(t *testing.T) {
	loads := Loads([]ScheduledActivity{testEntry("a", Sunday, Night, 2)}, ModeStartSlot)
	if len(loads) != DayCount*SlotCount {
		t.Fatalf("len = %d, want %d", len(loads), DayCount*SlotCount)
	}
	last := loads[len(loads)-1]
	if last.Day != Sunday || last.Slot != Night || last.Hours != 2 {
		t.Errorf("last bucket = %+v", last)
	}
	if loads[0].Day != Saturday || loads[0].Slot != Morning || loads[0].Hours != 0 {
		t.Errorf("first bucket = %+v", loads[0])
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "", want: ModeStartSlot},
		{input: "start-slot", want: ModeStartSlot},
		{input: "Spanning", want: ModeSpanning},
		{input: "weird", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
