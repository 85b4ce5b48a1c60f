package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"captionexport/internal/timeline"
)

// Kind is the media kind of a track or event.
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// ParseKind normalizes a kind name. An empty name yields fallback.
func ParseKind(value string, fallback Kind) (Kind, error) {
	switch kind := Kind(strings.ToLower(strings.TrimSpace(value))); kind {
	case "":
		return fallback, nil
	case KindVideo, KindAudio:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown kind %q", value)
	}
}

// TitleGenerator is the generator name used by TitleMedia.
const TitleGenerator = "Titles & Text"

// Project is a loaded timeline document.
type Project struct {
	name       string
	filePath   string
	sourcePath string
	frameRate  float64
	tracks     []*Track
}

var _ timeline.Document = (*Project)(nil)

// New returns an empty project.
func New(name string) *Project {
	return &Project{name: name}
}

// SetFrameRate records the project frame rate.
func (p *Project) SetFrameRate(rate float64) *Project {
	p.frameRate = rate
	return p
}

// SetFilePath records the host's own path for the project.
func (p *Project) SetFilePath(path string) *Project {
	p.filePath = path
	return p
}

// AddTrack appends a track and returns it.
func (p *Project) AddTrack(kind Kind) *Track {
	t := &Track{kind: kind}
	p.tracks = append(p.tracks, t)
	return t
}

// Name returns the project name, falling back to the file base name.
func (p *Project) Name() string {
	if name := strings.TrimSpace(p.name); name != "" {
		return name
	}
	path := p.FilePath()
	if path == "" {
		return ""
	}
	base := filepath.Base(hostPath(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FilePath returns the host project path when the file declared one, and the
// path the project was loaded from otherwise.
func (p *Project) FilePath() string {
	if p.filePath != "" {
		return p.filePath
	}
	return p.sourcePath
}

// SourcePath returns the path the project was loaded from.
func (p *Project) SourcePath() string { return p.sourcePath }

func (p *Project) FrameRate() float64 { return p.frameRate }

func (p *Project) Tracks() []timeline.Track {
	out := make([]timeline.Track, len(p.tracks))
	for i, t := range p.tracks {
		out[i] = t
	}
	return out
}

// Track is an ordered lane of events.
type Track struct {
	kind   Kind
	events []*Event
}

func (t *Track) Kind() Kind { return t.kind }

func (t *Track) IsVideo() bool { return t.kind == KindVideo }

// AddEvent appends an event of the track's kind at start frames.
func (t *Track) AddEvent(start, length int64) *Event {
	e := &Event{kind: t.kind, start: start, length: length}
	t.events = append(t.events, e)
	return e
}

func (t *Track) Events() []timeline.Event {
	out := make([]timeline.Event, len(t.events))
	for i, e := range t.events {
		out[i] = e
	}
	return out
}

// Event is a timed element. The first take is active unless SetActiveTake
// says otherwise.
type Event struct {
	kind   Kind
	start  int64
	length int64
	takes  []*Take
	active int
}

// SetKind overrides the event kind inherited from its track.
func (e *Event) SetKind(kind Kind) *Event {
	e.kind = kind
	return e
}

// AddTake appends a take referencing media, which may be nil.
func (e *Event) AddTake(name string, media *Media) *Event {
	e.takes = append(e.takes, &Take{name: name, media: media})
	return e
}

// SetActiveTake selects the active take. A negative index means none.
func (e *Event) SetActiveTake(index int) *Event {
	e.active = index
	return e
}

func (e *Event) IsVideo() bool { return e.kind == KindVideo }

func (e *Event) Start() int64 { return e.start }

func (e *Event) Length() int64 { return e.length }

func (e *Event) ActiveTake() (timeline.Take, bool) {
	if e.active < 0 || e.active >= len(e.takes) {
		return nil, false
	}
	return e.takes[e.active], true
}

// Take is one content selection of an event.
type Take struct {
	name  string
	media *Media
}

func (t *Take) Name() string { return t.name }

func (t *Take) Media() (timeline.Media, bool) {
	if t.media == nil {
		return nil, false
	}
	return t.media, true
}

// Media is a file or generated source.
type Media struct {
	path      string
	generator *Generator
}

// NewMedia returns media with an optional generator.
func NewMedia(path string, generator *Generator) *Media {
	return &Media{path: path, generator: generator}
}

// TitleMedia returns generated media whose title generator carries payload as
// its Text parameter.
func TitleMedia(payload string) *Media {
	return NewMedia("", NewGenerator(TitleGenerator, timeline.Parameter{
		Name:  "Text",
		Kind:  timeline.KindString,
		Value: payload,
	}))
}

func (m *Media) Path() string { return m.path }

func (m *Media) Generator() (timeline.Effect, bool) {
	if m.generator == nil {
		return nil, false
	}
	return m.generator, true
}

// Generator is a media generator effect with named parameters.
type Generator struct {
	name   string
	params []timeline.Parameter
}

// NewGenerator returns a generator exposing params.
func NewGenerator(name string, params ...timeline.Parameter) *Generator {
	return &Generator{name: name, params: append([]timeline.Parameter(nil), params...)}
}

func (g *Generator) Name() string { return g.name }

// Parameter finds a parameter by exact name, then case-insensitively.
func (g *Generator) Parameter(name string) (timeline.Parameter, bool) {
	for _, p := range g.params {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range g.params {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return timeline.Parameter{}, false
}

// hostPath lets filepath.Base see Windows separators on any platform.
func hostPath(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}
