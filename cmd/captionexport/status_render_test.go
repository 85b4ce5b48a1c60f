package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"

	"captionexport/internal/captions"
	"captionexport/internal/export"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Export", statusOK, "wrote 2 captions to out.txt", false)
	want := fmt.Sprintf("%-*s %s", statusLabelWidth, "Export:", "[OK] wrote 2 captions to out.txt")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Export", statusWarn, "", true)
	if !strings.HasPrefix(got, ansiYellow) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected yellow line, got %q", got)
	}
	requireContains(t, got, "[WARN]")
}

func TestExportStatusLines(t *testing.T) {
	lines := exportStatusLines(export.Result{Empty: true}, false)
	if len(lines) != 1 || !strings.Contains(lines[0], "[WARN]") {
		t.Fatalf("unexpected empty lines %q", lines)
	}

	result := export.Result{
		Path:  "out.txt",
		Lines: 2,
		Stats: captions.Stats{Events: 5, Skipped: map[captions.SkipReason]int{captions.SkipNoGenerator: 3}},
	}
	lines = exportStatusLines(result, false)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	requireContains(t, lines[0], "[OK] wrote 2 captions to out.txt")
	requireContains(t, lines[1], "3 of 5 video track events")
}

func TestRenderTable(t *testing.T) {
	columns := []tableColumn{
		{Header: "#", Align: text.AlignRight},
		{Header: "Text", MaxWidth: 10},
	}
	out := renderTable(columns, [][]string{
		{"1", "hello"},
		{"2", "a caption that is far too long for one line"},
		{"3"},
	})
	requireContains(t, out, "hello")
	requireContains(t, out, "Text")
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "far too long for") {
			t.Fatalf("expected long caption to wrap, got line %q", line)
		}
	}
	if renderTable(nil, nil) != "" {
		t.Fatal("expected empty table for no columns")
	}
}
