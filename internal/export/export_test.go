package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"captionexport/internal/config"
	"captionexport/internal/project"
	"captionexport/internal/report"
	"captionexport/internal/timecode"
)

func roundTripProject() *project.Project {
	p := project.New("roundtrip")
	video := p.AddTrack(project.KindVideo)
	video.AddEvent(300, 1).AddTake("c", project.TitleMedia(`{\rtf1\ansi C\par}`))
	video.AddEvent(100, 1).AddTake("b2", project.TitleMedia("B2"))
	video.AddEvent(100, 1).AddTake("b1", project.TitleMedia("B1"))
	video.AddEvent(50, 1).AddTake("a", project.TitleMedia("A"))
	return p
}

func TestRunWritesSortedReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	cfg := config.Default()

	result, err := Run(context.Background(), roundTripProject(), OptionsFromConfig(&cfg, path))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Empty || result.Lines != 4 || result.Path != path {
		t.Fatalf("unexpected result %+v", result)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "00:00:01;20 A\r\n00:00:03;10 B2\r\n00:00:03;10 B1\r\n00:00:10;00 C\r\n"
	if string(got) != want {
		t.Fatalf("unexpected report %q, want %q", got, want)
	}
}

func TestRunEmptyDocumentWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	result, err := Run(context.Background(), project.New("empty"), Options{Path: path, FrameRate: 29.97})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !result.Empty {
		t.Fatalf("expected empty result, got %+v", result)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files, found %d", len(entries))
	}
}

func TestRunNoCaptionsWritesEmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	p := project.New("audio only")
	p.AddTrack(project.KindAudio).AddEvent(0, 10)

	result, err := Run(context.Background(), p, Options{Path: path, FrameRate: 29.97})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Empty || result.Lines != 0 || result.Stats.SkippedTracks != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected report file: %v", err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected empty report, got %d bytes", info.Size())
	}
}

func TestRunIOFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")
	_, err := Run(context.Background(), roundTripProject(), Options{Path: path, FrameRate: 29.97})
	var ioErr *report.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected path in error: %v", err)
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "out.txt")
	if _, err := Run(ctx, roundTripProject(), Options{Path: path, FrameRate: 29.97}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no report, stat err = %v", err)
	}
}

func TestFormatterPrefersDocumentRate(t *testing.T) {
	tests := []struct {
		name     string
		docRate  float64
		format   timecode.Format
		fallback float64
		want     timecode.Format
		wantRate float64
	}{
		{"fallback when document has no rate", 0, timecode.SMPTEDrop, 29.97, timecode.SMPTEDrop, 29.97},
		{"document rate wins", 59.94, timecode.SMPTEDrop, 29.97, timecode.SMPTEDrop, 59.94},
		{"drop-frame downgraded for PAL", 25, timecode.SMPTEDrop, 29.97, timecode.SMPTE, 25},
		{"empty format defaults to drop-frame", 0, "", 29.97, timecode.SMPTEDrop, 29.97},
		{"time keeps format", 24, timecode.Time, 29.97, timecode.Time, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := project.New("rate").SetFrameRate(tt.docRate)
			tc, err := Formatter(doc, tt.format, tt.fallback, nil)
			if err != nil {
				t.Fatalf("Formatter returned error: %v", err)
			}
			if tc.Name() != tt.want || tc.Rate() != tt.wantRate {
				t.Fatalf("got %s@%v, want %s@%v", tc.Name(), tc.Rate(), tt.want, tt.wantRate)
			}
		})
	}

	if _, err := Formatter(project.New("bad"), timecode.SMPTEDrop, 25, nil); err == nil {
		t.Fatal("expected error for configured drop-frame at 25 fps")
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		project string
		want    string
	}{
		{filepath.Join("projects", "demo.yaml"), filepath.Join("projects", "ExportTextEventdemo.txt")},
		{"demo.db", "ExportTextEventdemo.txt"},
		{filepath.Join("a", "my: cut.json"), filepath.Join("a", "ExportTextEventmy- cut.txt")},
	}
	for _, tt := range tests {
		if got := DefaultOutputPath(tt.project, "ExportTextEvent", ".txt"); got != tt.want {
			t.Errorf("DefaultOutputPath(%q) = %q, want %q", tt.project, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	source := filepath.Join("in", "demo.yaml")
	tests := []struct {
		name     string
		explicit string
		dir      string
		host     string
		want     string
	}{
		{"explicit wins", " explicit.txt ", "out", "", "explicit.txt"},
		{"dir override", "", "out", "", filepath.Join("out", "Pdemo.txt")},
		{"next to source", "", "", "", filepath.Join("in", "Pdemo.txt")},
		{"host project name", "", "", `C:\projects\Show.veg`, filepath.Join("in", "PShow.txt")},
		{"host name with dir override", "", "out", "/srv/edit/Show.veg", filepath.Join("out", "PShow.txt")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPath(tt.explicit, tt.dir, source, tt.host, "P", ".txt"); got != tt.want {
				t.Fatalf("OutputPath = %q, want %q", got, tt.want)
			}
		})
	}
}
