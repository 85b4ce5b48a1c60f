package captions

import (
	"log/slog"
	"strings"

	"captionexport/internal/logging"
	"captionexport/internal/richtext"
	"captionexport/internal/timeline"
)

// DefaultParameter is the generator parameter that carries caption text.
const DefaultParameter = "Text"

// Record is one caption found on the timeline. Track and Event are zero-based
// scan indices kept for previews; they do not take part in ordering.
type Record struct {
	Position int64  `json:"position"`
	Text     string `json:"text"`
	Track    int    `json:"track"`
	Event    int    `json:"event"`
}

// SkipReason explains why an event produced no record.
type SkipReason string

const (
	SkipNonVideoEvent SkipReason = "non_video_event"
	SkipNoActiveTake  SkipReason = "no_active_take"
	SkipNoMedia       SkipReason = "no_media"
	SkipNoGenerator   SkipReason = "no_generator"
	SkipNoParameter   SkipReason = "no_parameter"
	SkipNotString     SkipReason = "parameter_not_string"
	SkipMalformed     SkipReason = "malformed_payload"
	SkipEmptyText     SkipReason = "empty_text"
)

// Stats summarizes one extraction pass.
type Stats struct {
	VideoTracks   int
	SkippedTracks int
	Events        int
	Captions      int
	Skipped       map[SkipReason]int
}

// SkippedEvents returns the total number of skipped events.
func (s Stats) SkippedEvents() int {
	total := 0
	for _, n := range s.Skipped {
		total += n
	}
	return total
}

// Extractor scans documents for caption events.
type Extractor struct {
	parameter string
	logger    *slog.Logger
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithParameter overrides the generator parameter name.
func WithParameter(name string) Option {
	return func(e *Extractor) {
		if name = strings.TrimSpace(name); name != "" {
			e.parameter = name
		}
	}
}

// WithLogger attaches a logger for per-event debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor builds an Extractor looking up DefaultParameter unless told otherwise.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{parameter: DefaultParameter, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.NewComponentLogger(e.logger, "extract")
	return e
}

// Extract returns the captions of doc in scan order using default settings.
func Extract(doc timeline.Document) []Record {
	records, _ := NewExtractor().Extract(doc)
	return records
}

// Extract scans doc and returns its captions in track then event order.
func (e *Extractor) Extract(doc timeline.Document) ([]Record, Stats) {
	stats := Stats{Skipped: make(map[SkipReason]int)}
	if doc == nil {
		return nil, stats
	}

	var records []Record
	for ti, track := range doc.Tracks() {
		if track == nil || !track.IsVideo() {
			stats.SkippedTracks++
			continue
		}
		stats.VideoTracks++
		for ei, event := range track.Events() {
			stats.Events++
			text, reason := e.captionText(event)
			if reason != "" {
				stats.Skipped[reason]++
				e.logger.Debug("event skipped",
					logging.Int("track", ti),
					logging.Int("event", ei),
					logging.String("reason", string(reason)),
				)
				continue
			}
			e.logger.Debug("caption found",
				logging.Int("track", ti),
				logging.Int("event", ei),
				logging.Int64("position", event.Start()),
			)
			records = append(records, Record{
				Position: event.Start(),
				Text:     text,
				Track:    ti,
				Event:    ei,
			})
		}
	}
	stats.Captions = len(records)
	e.logger.Debug("scan complete",
		logging.Int("video_tracks", stats.VideoTracks),
		logging.Int("events", stats.Events),
		logging.Int("captions", stats.Captions),
	)
	return records, stats
}

func (e *Extractor) captionText(event timeline.Event) (string, SkipReason) {
	if event == nil || !event.IsVideo() {
		return "", SkipNonVideoEvent
	}
	take, ok := event.ActiveTake()
	if !ok || take == nil {
		return "", SkipNoActiveTake
	}
	media, ok := take.Media()
	if !ok || media == nil {
		return "", SkipNoMedia
	}
	generator, ok := media.Generator()
	if !ok || generator == nil {
		return "", SkipNoGenerator
	}
	param, ok := generator.Parameter(e.parameter)
	if !ok {
		return "", SkipNoParameter
	}
	payload, ok := param.StringValue()
	if !ok {
		return "", SkipNotString
	}
	text, err := richtext.Decode(payload)
	if err != nil {
		e.logger.Debug("caption payload not decodable", logging.Error(err))
		return "", SkipMalformed
	}
	if text == "" {
		return "", SkipEmptyText
	}
	return text, ""
}
