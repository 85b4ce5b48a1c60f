package timecode

import (
	"math"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		rate   float64
		frames int64
		want   string
	}{
		{name: "smpte zero", format: SMPTE, rate: 30, frames: 0, want: "00:00:00:00"},
		{name: "smpte seconds", format: SMPTE, rate: 30, frames: 95, want: "00:00:03:05"},
		{name: "smpte hours", format: SMPTE, rate: 25, frames: 25 * 3600 * 2, want: "02:00:00:00"},
		{name: "smpte hours do not wrap", format: SMPTE, rate: 24, frames: 24 * 3600 * 30, want: "30:00:00:00"},
		{name: "smpte fractional rate uses timebase", format: SMPTE, rate: 23.976, frames: 48, want: "00:00:02:00"},
		{name: "drop before first minute", format: SMPTEDrop, rate: 29.97, frames: 1799, want: "00:00:59;29"},
		{name: "drop skips frame labels", format: SMPTEDrop, rate: 29.97, frames: 1800, want: "00:01:00;02"},
		{name: "drop tenth minute keeps labels", format: SMPTEDrop, rate: 29.97, frames: 17982, want: "00:10:00;00"},
		{name: "drop one hour", format: SMPTEDrop, rate: 30000.0 / 1001.0, frames: 107892, want: "01:00:00;00"},
		{name: "drop 59.94", format: SMPTEDrop, rate: 59.94, frames: 3600, want: "00:01:00;04"},
		{name: "clock", format: Time, rate: 30, frames: 45, want: "00:00:01.500"},
		{name: "clock ntsc", format: Time, rate: 29.97, frames: 1800, want: "00:01:00.060"},
		{name: "frames", format: Frames, rate: 30, frames: 123456789, want: "123456789"},
		{name: "negative", format: SMPTE, rate: 30, frames: -31, want: "-00:00:01:01"},
		{name: "large count", format: Frames, rate: 30, frames: math.MaxInt64, want: "9223372036854775807"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.format, tt.rate)
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			if got := f.Render(tt.frames); got != tt.want {
				t.Fatalf("Render(%d) = %q, want %q", tt.frames, got, tt.want)
			}
		})
	}
}

func TestNewRejectsInvalidCombinations(t *testing.T) {
	if _, err := New(SMPTE, 0); err == nil {
		t.Fatal("expected zero rate to be rejected")
	}
	if _, err := New(SMPTE, math.NaN()); err == nil {
		t.Fatal("expected NaN rate to be rejected")
	}
	if _, err := New(SMPTEDrop, 25); err == nil {
		t.Fatal("expected drop-frame at 25 fps to be rejected")
	}
	if _, err := New(Format("feet"), 24); err == nil {
		t.Fatal("expected unknown format to be rejected")
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"SMPTE":      SMPTE,
		" ndf ":      SMPTE,
		"smpte-drop": SMPTEDrop,
		"df":         SMPTEDrop,
		"time":       Time,
		"frames":     Frames,
	}
	for input, want := range cases {
		got, err := ParseFormat(input)
		if err != nil {
			t.Fatalf("ParseFormat(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", input, got, want)
		}
	}
	_, err := ParseFormat("reel")
	if err == nil {
		t.Fatal("expected unknown format error")
	}
	for _, format := range Formats() {
		if !strings.Contains(err.Error(), string(format)) {
			t.Fatalf("expected error to list %q, got %v", format, err)
		}
	}
}

func TestZeroFormatterValidate(t *testing.T) {
	var f Formatter
	if err := f.Validate(); err == nil {
		t.Fatal("expected zero formatter to be invalid")
	}
	if err := MustNew(Frames, 24).Validate(); err != nil {
		t.Fatalf("expected valid formatter, got %v", err)
	}
}

func TestRenderOutOfRangeFallsBackToFrameCount(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		rate   float64
		frames int64
		want   string
	}{
		{"drop-frame past MaxFrames", SMPTEDrop, 29.97, math.MaxInt64, "9223372036854775807"},
		{"smpte past MaxFrames", SMPTE, 25, MaxFrames + 1, "9007199254740993"},
		{"negative past MaxFrames", SMPTEDrop, 29.97, math.MinInt64 + 1, "-9223372036854775807"},
		{"clock overflow at tiny rate", Time, 1e-9, 1 << 40, "1099511627776"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := MustNew(tt.format, tt.rate)
			if got := f.Render(tt.frames); got != tt.want {
				t.Fatalf("Render(%d) = %q, want %q", tt.frames, got, tt.want)
			}
		})
	}

	f := MustNew(SMPTEDrop, 29.97)
	if got := f.Render(MaxFrames); strings.ContainsAny(got, "-") || !strings.Contains(got, ";") {
		t.Fatalf("expected MaxFrames to render as drop-frame timecode, got %q", got)
	}
}
