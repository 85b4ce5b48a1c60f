package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format names a display convention.
type Format string

const (
	SMPTE     Format = "smpte"
	SMPTEDrop Format = "smpte-drop"
	Time      Format = "time"
	Frames    Format = "frames"
)

// MaxFrames is the largest count rendered as timecode fields. Larger counts,
// where the field arithmetic would overflow, render as plain frame numbers.
const MaxFrames int64 = 1 << 53

// Formats lists every supported format name.
func Formats() []Format {
	return []Format{SMPTE, SMPTEDrop, Time, Frames}
}

// FormatNames joins Formats for help and error text.
func FormatNames() string {
	names := make([]string, 0, len(Formats()))
	for _, format := range Formats() {
		names = append(names, string(format))
	}
	return strings.Join(names, ", ")
}

// ParseFormat normalizes a format name.
func ParseFormat(value string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(value)))
	switch format {
	case SMPTE, SMPTEDrop, Time, Frames:
		return format, nil
	case "smpte-ndf", "ndf":
		return SMPTE, nil
	case "smpte-df", "df", "drop":
		return SMPTEDrop, nil
	default:
		return "", fmt.Errorf("unknown timecode format %q (want %s)", value, FormatNames())
	}
}

// Formatter converts frame counts under a fixed rate and format.
type Formatter struct {
	format   Format
	rate     float64
	timebase int64
	dropped  int64
}

// New validates the format/rate combination. Drop-frame is only defined for
// 29.97 and 59.94 fps.
func New(format Format, rate float64) (Formatter, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return Formatter{}, fmt.Errorf("frame rate must be positive, got %v", rate)
	}
	f := Formatter{format: format, rate: rate, timebase: int64(math.Round(rate))}
	if f.timebase < 1 {
		f.timebase = 1
	}
	switch format {
	case SMPTE, Time, Frames:
	case SMPTEDrop:
		if !isNTSC(rate) {
			return Formatter{}, fmt.Errorf("drop-frame timecode requires 29.97 or 59.94 fps, got %v", rate)
		}
		f.dropped = f.timebase / 15
	default:
		return Formatter{}, fmt.Errorf("unknown timecode format %q", format)
	}
	return f, nil
}

// MustNew is New for static configurations known to be valid.
func MustNew(format Format, rate float64) Formatter {
	f, err := New(format, rate)
	if err != nil {
		panic(err)
	}
	return f
}

// ErrZeroFormatter is returned by Validate on an uninitialized Formatter.
var ErrZeroFormatter = errors.New("timecode formatter not initialized")

// Validate reports whether f was built through New.
func (f Formatter) Validate() error {
	if f.rate <= 0 {
		return ErrZeroFormatter
	}
	return nil
}

// Name returns the configured format.
func (f Formatter) Name() Format { return f.format }

// Rate returns the configured frame rate.
func (f Formatter) Rate() float64 { return f.rate }

// Render returns frames in the configured format.
func (f Formatter) Render(frames int64) string {
	if frames < 0 {
		if frames == math.MinInt64 {
			return "-" + strconv.FormatUint(uint64(1)<<63, 10)
		}
		return "-" + f.Render(-frames)
	}
	if frames > MaxFrames {
		return strconv.FormatInt(frames, 10)
	}
	switch f.format {
	case Frames:
		return strconv.FormatInt(frames, 10)
	case Time:
		return f.clock(frames)
	case SMPTEDrop:
		return f.smpte(f.dropFrameNumber(frames), ';')
	default:
		return f.smpte(frames, ':')
	}
}

func (f Formatter) smpte(frames int64, sep byte) string {
	ff := frames % f.timebase
	totalSeconds := frames / f.timebase
	ss := totalSeconds % 60
	mm := (totalSeconds / 60) % 60
	hh := totalSeconds / 3600
	return fmt.Sprintf("%02d:%02d:%02d%c%02d", hh, mm, ss, sep, ff)
}

// dropFrameNumber maps a real frame count onto the drop-frame label space,
// skipping the first frame numbers of every minute except each tenth.
func (f Formatter) dropFrameNumber(frames int64) int64 {
	perMinute := f.timebase*60 - f.dropped
	perTenMinutes := perMinute*10 + f.dropped
	tens := frames / perTenMinutes
	rem := frames % perTenMinutes
	frames += 9 * f.dropped * tens
	if rem > f.dropped {
		frames += f.dropped * ((rem - f.dropped) / perMinute)
	}
	return frames
}

func (f Formatter) clock(frames int64) string {
	scaled := math.Round(float64(frames) * 1000 / f.rate)
	if scaled >= math.MaxInt64 {
		return strconv.FormatInt(frames, 10)
	}
	millis := int64(scaled)
	ms := millis % 1000
	totalSeconds := millis / 1000
	ss := totalSeconds % 60
	mm := (totalSeconds / 60) % 60
	hh := totalSeconds / 3600
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hh, mm, ss, ms)
}

func isNTSC(rate float64) bool {
	return math.Abs(rate-30000.0/1001.0) < 0.01 || math.Abs(rate-60000.0/1001.0) < 0.01
}
