package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/weekendly/internal/config"
	"github.com/javiermolinar/weekendly/internal/db"
	"github.com/javiermolinar/weekendly/internal/llm"
	"github.com/javiermolinar/weekendly/internal/logger"
	"github.com/javiermolinar/weekendly/internal/plan"
)

// testEnv runs commands against one storage location. Each run builds a
// fresh App so flag values never leak between invocations.
type testEnv struct {
	t      *testing.T
	cfg    *config.Config
	client llm.Client
}

func newTestEnv(t *testing.T, driver string) *testEnv {
	t.Helper()
	DisableColor()

	cfg := config.Default()
	cfg.Storage.Driver = driver
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "weekendly."+driver)
	cfg.Log.Dir = ""
	return &testEnv{t: t, cfg: cfg}
}

func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()

	a := NewApp(e.cfg)
	defer func() { _ = a.Close() }()
	a.log = logger.Discard()
	if e.client != nil {
		a.newClient = func(_, _, _ string) (llm.Client, error) { return e.client, nil }
	}

	var buf bytes.Buffer
	a.root.SetOut(&buf)
	a.root.SetErr(&buf)
	a.root.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{} // nil makes cobra fall back to os.Args
	}
	a.root.SetArgs(args)

	err := a.Execute()
	return buf.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run("", args...)
	if err != nil {
		e.t.Fatalf("weekendly %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

// state reads the persisted plan back through a fresh store.
func (e *testEnv) state() plan.State {
	e.t.Helper()
	repo, err := db.Open(e.cfg.Storage.Driver, e.cfg.Storage.DBPath, e.cfg.Storage.History)
	if err != nil {
		e.t.Fatalf("opening repo: %v", err)
	}
	defer func() { _ = repo.Close() }()

	store := plan.NewStore(plan.NewReducer(nil, nil))
	if _, err := store.Load(context.Background(), repo); err != nil {
		e.t.Fatalf("loading store: %v", err)
	}
	return store.State()
}

type stubClient struct {
	reply    string
	messages []llm.Message
}

func (s *stubClient) Chat(_ context.Context, messages []llm.Message) (string, error) {
	s.messages = messages
	return s.reply, nil
}

func TestCLI_AddEditRemove(t *testing.T) {
	for _, driver := range []string{db.DriverSQLite, db.DriverJSON} {
		t.Run(driver, func(t *testing.T) {
			env := newTestEnv(t, driver)

			out := env.mustRun("add", "Weekend Brunch", "--day=saturday", "--slot=morning")
			if !strings.Contains(out, "Scheduled") || !strings.Contains(out, "Weekend Brunch") {
				t.Errorf("unexpected add output: %q", out)
			}

			entries := env.state().Schedule.Day(plan.Saturday)
			if len(entries) != 1 {
				t.Fatalf("got %d saturday entries, want 1", len(entries))
			}
			id := entries[0].ID
			if entries[0].DurationHours != 2 {
				t.Errorf("duration = %d, want the activity's 2h", entries[0].DurationHours)
			}

			env.mustRun("edit", strings.TrimPrefix(id, plan.EntryPrefix)[:8], "--day=sunday", "--hours=3")
			moved, ok := env.state().Schedule.Find(id)
			if !ok {
				t.Fatal("entry lost after edit")
			}
			if moved.Day != plan.Sunday || moved.Slot != plan.Morning || moved.DurationHours != 3 {
				t.Errorf("edit result = %s %s %dh", moved.Day, moved.Slot, moved.DurationHours)
			}

			env.mustRun("remove", id)
			if !env.state().Schedule.IsEmpty() {
				t.Error("schedule should be empty after remove")
			}
		})
	}
}

func TestCLI_AddErrors(t *testing.T) {
	env := newTestEnv(t, db.DriverJSON)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown activity", args: []string{"add", "skydiving", "--day=saturday", "--slot=morning"}},
		{name: "bad day", args: []string{"add", "hike-001", "--day=friday", "--slot=morning"}},
		{name: "bad slot", args: []string{"add", "hike-001", "--day=saturday", "--slot=noon"}},
		{name: "zero hours", args: []string{"add", "hike-001", "--day=saturday", "--slot=morning", "--hours=0"}},
		{name: "missing flags", args: []string{"add", "hike-001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.run("", tt.args...); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := os.Stat(env.cfg.Storage.DBPath); !os.IsNotExist(err) {
		t.Errorf("failed adds should not save a snapshot, stat err = %v", err)
	}
}

func TestCLI_Conflicts(t *testing.T) {
	env := newTestEnv(t, db.DriverJSON)

	env.mustRun("add", "hike-001", "--day=saturday", "--slot=morning")
	out, err := env.run("", "conflicts")
	if err != nil {
		t.Fatalf("3h in morning should not conflict: %v", err)
	}
	if !strings.Contains(out, "No conflicts") {
		t.Errorf("unexpected output: %q", out)
	}

	out = env.mustRun("add", "brunch-001", "--day=saturday", "--slot=morning")
	if !strings.Contains(out, "Conflict") {
		t.Errorf("add should warn about the overbooked slot: %q", out)
	}

	out, err = env.run("", "conflicts")
	if !errors.Is(err, errConflicts) {
		t.Fatalf("err = %v, want errConflicts", err)
	}
	if !strings.Contains(out, "Saturday morning: 5h booked, 4h available") {
		t.Errorf("missing overload line: %q", out)
	}
	if !strings.Contains(out, "Nature Hike") || !strings.Contains(out, "Weekend Brunch") {
		t.Errorf("missing pair: %q", out)
	}
}

func TestCLI_ConflictsSpanningMode(t *testing.T) {
	env := newTestEnv(t, db.DriverJSON)

	env.mustRun("add", "movie-001", "--day=sunday", "--slot=evening", "--hours=6")
	env.mustRun("add", "friends-001", "--day=sunday", "--slot=night", "--hours=4")

	if _, err := env.run("", "conflicts", "--mode=start-slot"); !errors.Is(err, errConflicts) {
		t.Fatalf("6h in a 4h evening must conflict in start-slot mode, err = %v", err)
	}

	out, err := env.run("", "conflicts", "--mode=spanning")
	if !errors.Is(err, errConflicts) {
		t.Fatalf("err = %v, want errConflicts", err)
	}
	if !strings.Contains(out, "spanning mode") {
		t.Errorf("mode not reported: %q", out)
	}

	if _, err := env.run("", "conflicts", "--mode=sideways"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestCLI_Show(t *testing.T) {
	env := newTestEnv(t, db.DriverJSON)

	out := env.mustRun()
	if !strings.Contains(out, "Saturday") || !strings.Contains(out, "Sunday") {
		t.Errorf("board missing days: %q", out)
	}
	if !strings.Contains(out, "Nothing planned yet") {
		t.Errorf("empty board hint missing: %q", out)
	}

	env.mustRun("add", "yoga-001", "--day=sunday", "--slot=morning")
	out = env.mustRun("show")
	if !strings.Contains(out, "Morning Yoga") || !strings.Contains(out, "1/4h") {
		t.Errorf("board missing entry: %q", out)
	}
}

func TestCLI_ShowSpillHint(t *testing.T) {
	env := newTestEnv(t, db.DriverJSON)
	env.mustRun("add", "movie-001", "--day=sunday", "--slot=evening", "--hours=6")

	out := env.mustRun("show", "--mode=start-slot")
	if strings.Contains(out, "runs into") {
		t.Errorf("spill hint shown in start-slot mode: %q", out)
	}

	out = env.mustRun("show", "--mode=spanning")
	if !strings.Contains(out, "runs into night") {
		t.Errorf("spill hint missing in spanning mode: %q", out)
	}
}

func TestCLI_Clear(t *testing.T) {
	env := newTestEnv(t, db.DriverJSON)
	env.mustRun("add", "hike-001", "--day=saturday", "--slot=morning")
	env.mustRun("theme", "adventure-seeker")

	if _, err := env.run("n\n", "clear"); !errors.Is(err, errAborted) {
		t.Fatalf("err = %v, want errAborted", err)
	}
	if env.state().Schedule.IsEmpty() {
		t.Fatal("declined clear must keep the schedule")
	}

	if _, err := env.run("y\n", "clear"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	state := env.state()
	if !state.Schedule.IsEmpty() {
		t.Error("schedule should be empty")
	}
	if state.SelectedTheme == nil || state.SelectedTheme.ID != "adventure-seeker" {
		t.Error("clear must keep the theme")
	}
}

func TestCLI_Randomize(t *testing.T) {
	env := newTestEnv(t, db.DriverJSON)

	env.mustRun("randomize", "--seed=7")
	first := env.state().Schedule
	if first.Len() != 8 {
		t.Fatalf("got %d entries, want 8", first.Len())
	}

	env.mustRun("randomize", "--seed=7")
	second := env.state().Schedule
	for _, day := range plan.Days() {
		a, b := first.Day(day), second.Day(day)
		for i := range a {
			if a[i].Activity.ID != b[i].Activity.ID {
				t.Errorf("%s[%d]: %s vs %s with the same seed", day, i, a[i].Activity.ID, b[i].Activity.ID)
			}
		}
	}
}

func TestCLI_LibraryFiltersPersist(t *testing.T) {
	env := newTestEnv(t, db.DriverJSON)

	out := env.mustRun("library", "--category=wellness")
	if !strings.Contains(out, "Morning Yoga") || strings.Contains(out, "Nature Hike") {
		t.Errorf("category filter not applied: %q", out)
	}

	out = env.mustRun("library", "--energy=high")
	if !strings.Contains(out, "Gym Session") || strings.Contains(out, "Morning Yoga") {
		t.Errorf("filters should combine: %q", out)
	}

	out = env.mustRun("library", "--reset")
	if !strings.Contains(out, "Nature Hike") || !strings.Contains(out, "Morning Yoga") {
		t.Errorf("reset should show everything: %q", out)
	}
	if env.state().Filters.Active() {
		t.Error("filters still active after reset")
	}

	if _, err := env.run("", "library", "--category=sports"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestCLI_CreateCustomActivity(t *testing.T) {
	env := newTestEnv(t, db.DriverJSON)

	env.mustRun("create", "--name=Pottery", "--category=creative", "--duration=2",
		"--time=afternoon", "--description=Wheel throwing")

	var custom string
	for _, a := range env.state().Activities {
		if a.Name == "Pottery" {
			custom = a.ID
		}
	}
	if !strings.HasPrefix(custom, "custom-") {
		t.Fatalf("custom activity not saved, id = %q", custom)
	}

	env.mustRun("add", "pottery", "--day=sunday", "--slot=afternoon")
	entries := env.state().Schedule.Day(plan.Sunday)
	if len(entries) != 1 || entries[0].Activity.ID != custom {
		t.Errorf("custom activity not schedulable: %+v", entries)
	}

	if _, err := env.run("", "create", "--name=Empty", "--category=creative", "--description=x", "--duration=9"); err == nil {
		t.Error("expected error for a 9h custom activity")
	}
}

func TestCLI_ThemeAndSuggest(t *testing.T) {
	env := newTestEnv(t, db.DriverJSON)

	out := env.mustRun("suggest")
	if !strings.Contains(out, "No theme selected") {
		t.Errorf("unexpected output: %q", out)
	}

	env.mustRun("theme", "adventure-seeker")
	out = env.mustRun("suggest")
	if !strings.Contains(out, "Nature Hike") {
		t.Errorf("themed pick missing: %q", out)
	}

	out = env.mustRun("theme")
	if !strings.Contains(out, "● adventure-seeker") {
		t.Errorf("selected theme not marked: %q", out)
	}

	env.mustRun("theme", "default")
	if env.state().SelectedTheme != nil {
		t.Error("default should clear the theme")
	}

	if _, err := env.run("", "theme", "gothic"); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestCLI_ExportImport(t *testing.T) {
	src := newTestEnv(t, db.DriverSQLite)
	src.mustRun("add", "brunch-001", "--day=saturday", "--slot=morning")
	src.mustRun("add", "karaoke-001", "--day=sunday", "--slot=night")
	src.mustRun("theme", "social-butterfly")

	exportPath := filepath.Join(t.TempDir(), "plan.json")
	src.mustRun("export", exportPath)

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !json.Valid(data) {
		t.Fatalf("export is not JSON: %s", data)
	}

	text := src.mustRun("export", "--format=text")
	if !strings.HasPrefix(text, "My Weekend Plan") || !strings.Contains(text, "Karaoke Night") {
		t.Errorf("unexpected text export: %q", text)
	}

	dst := newTestEnv(t, db.DriverJSON)
	out := dst.mustRun("import", exportPath)
	if !strings.Contains(out, "Imported 2 scheduled activities") {
		t.Errorf("unexpected import output: %q", out)
	}

	state := dst.state()
	if state.Schedule.Len() != 2 {
		t.Errorf("got %d entries, want 2", state.Schedule.Len())
	}
	if state.SelectedTheme == nil || state.SelectedTheme.ID != "social-butterfly" {
		t.Errorf("theme not imported: %+v", state.SelectedTheme)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := dst.run("", "import", bad); err == nil {
		t.Error("expected error for malformed import")
	}
	if _, err := dst.run("", "export", "--format=pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestCLI_ImportReportsDroppedEntries(t *testing.T) {
	env := newTestEnv(t, db.DriverJSON)

	path := filepath.Join(t.TempDir(), "partial.json")
	payload := `{"schedule":{"saturday":[{"id":"sched-x","activity":{"id":"hike-001","name":"Nature Hike","category":"outdoor","duration":3,"timeOfDay":"any","energy":"high"},"slot":"morning","durationHours":3},{"id":"sched-y","slot":"brunch"}],"sunday":[]}}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	out := env.mustRun("import", path)
	if !strings.Contains(out, "Skipped invalid fields") || !strings.Contains(out, "schedule.saturday[1]") {
		t.Errorf("dropped entry not reported: %q", out)
	}
	if env.state().Schedule.Len() != 1 {
		t.Errorf("valid entry should be imported")
	}
}

func TestCLI_ImportKeepsCustomActivities(t *testing.T) {
	env := newTestEnv(t, db.DriverSQLite)
	env.mustRun("create", "--name=Pottery", "--category=creative", "--duration=2",
		"--time=afternoon", "--description=Wheel throwing")
	before := len(env.state().Activities)

	path := filepath.Join(t.TempDir(), "schedule-only.json")
	if err := os.WriteFile(path, []byte(`{"schedule":{"saturday":[],"sunday":[]}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	env.mustRun("import", path)

	state := env.state()
	if len(state.Activities) != before {
		t.Errorf("library has %d activities after import, want %d", len(state.Activities), before)
	}
	if _, err := resolveActivity(state.Activities, "pottery"); err != nil {
		t.Errorf("custom activity lost on import: %v", err)
	}
}

func TestCLI_History(t *testing.T) {
	env := newTestEnv(t, db.DriverSQLite)

	env.mustRun("add", "brunch-001", "--day=saturday", "--slot=morning")
	env.mustRun("add", "hike-001", "--day=saturday", "--slot=afternoon")

	out := env.mustRun("history")
	if !strings.Contains(out, "#1") || !strings.Contains(out, "#2") {
		t.Fatalf("history missing snapshots: %q", out)
	}

	env.mustRun("history", "--restore=1")
	if got := env.state().Schedule.Len(); got != 1 {
		t.Errorf("restored schedule has %d entries, want 1", got)
	}

	if _, err := env.run("", "history", "--restore=99"); err == nil {
		t.Error("expected error for unknown snapshot")
	}

	env.mustRun("library")
	env.mustRun("show")
	if out := env.mustRun("history"); strings.Contains(out, "#4") {
		t.Errorf("browsing saved a snapshot: %q", out)
	}

	jsonEnv := newTestEnv(t, db.DriverJSON)
	if _, err := jsonEnv.run("", "history"); err == nil {
		t.Error("history should require the sqlite driver")
	}
}

func TestCLI_Analyze(t *testing.T) {
	env := newTestEnv(t, db.DriverJSON)
	stub := &stubClient{reply: "  Looks like a lovely, relaxed weekend.  "}
	env.client = stub

	out := env.mustRun("analyze")
	if !strings.Contains(out, "Nothing planned yet") || stub.messages != nil {
		t.Errorf("empty weekend should not call the model: %q", out)
	}

	env.mustRun("add", "brunch-001", "--day=saturday", "--slot=morning")
	out = env.mustRun("analyze")
	if !strings.Contains(out, "Looks like a lovely, relaxed weekend.") {
		t.Errorf("insight missing: %q", out)
	}
	if len(stub.messages) != 2 || !strings.Contains(stub.messages[1].Content, "morning: Weekend Brunch") {
		t.Errorf("unexpected prompt: %+v", stub.messages)
	}

	out = env.mustRun("analyze", "--prompt")
	if !strings.HasPrefix(out, "Weekend Schedule Analysis:") {
		t.Errorf("unexpected prompt output: %q", out)
	}
}

func TestRunConfigInteractive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	var buf bytes.Buffer

	if err := runConfigInteractive(path, strings.NewReader("n\n"), &buf); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Created") {
		t.Errorf("config file not created: %q", buf.String())
	}

	// Accept edits: change conflict mode and keep the rest.
	input := "y\nspanning\n\n\n\n\n\n\n\n\n"
	buf.Reset()
	if err := runConfigInteractive(path, strings.NewReader(input), &buf); err != nil {
		t.Fatalf("edit run failed: %v", err)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if cfg.ConflictMode() != plan.ModeSpanning {
		t.Errorf("conflict mode = %s, want spanning", cfg.ConflictMode())
	}
}
