package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew_WritesToFile(t *testing.T) {
	dir := t.TempDir()

	l, err := New(Options{Level: "info", Dir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Info("schedule saved", "entries", 3)
	l.Debug("hidden at info level")
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "schedule saved") || !strings.Contains(out, "entries=3") {
		t.Errorf("log missing info line: %q", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Errorf("debug line written at info level: %q", out)
	}
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		want  log.Level
		isErr bool
	}{
		{name: "default warn", opts: Options{}, want: log.WarnLevel},
		{name: "explicit error", opts: Options{Level: "error"}, want: log.ErrorLevel},
		{name: "debug wins", opts: Options{Level: "error", Debug: true}, want: log.DebugLevel},
		{name: "bad level", opts: Options{Level: "chatty"}, isErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.opts)
			if tt.isErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer func() { _ = l.Close() }()
			if l.GetLevel() != tt.want {
				t.Errorf("level = %s, want %s", l.GetLevel(), tt.want)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nobody hears this")
	if err := l.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
