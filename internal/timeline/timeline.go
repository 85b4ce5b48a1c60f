package timeline

import (
	"fmt"
	"strings"
)

// Document is a read-only handle to a host project.
type Document interface {
	Tracks() []Track
	// FrameRate reports the project frame rate in frames per second, or 0
	// when the document does not carry one.
	FrameRate() float64
}

// Track is an ordered lane of events.
type Track interface {
	IsVideo() bool
	Events() []Event
}

// Event is a timed element placed on a track.
type Event interface {
	IsVideo() bool
	// Start returns the event position as a frame count.
	Start() int64
	ActiveTake() (Take, bool)
}

// Take is one content selection of an event.
type Take interface {
	Media() (Media, bool)
}

// Media is the content referenced by a take.
type Media interface {
	Generator() (Effect, bool)
}

// Effect is a generator or effect exposing named parameters.
type Effect interface {
	Parameter(name string) (Parameter, bool)
}

// ParameterKind identifies the value type of a parameter.
type ParameterKind string

const (
	KindString  ParameterKind = "string"
	KindDouble  ParameterKind = "double"
	KindInteger ParameterKind = "integer"
	KindBoolean ParameterKind = "boolean"
	KindChoice  ParameterKind = "choice"
	KindRGBA    ParameterKind = "rgba"
)

// ParseParameterKind normalizes a kind name. An empty name maps to KindString.
func ParseParameterKind(value string) (ParameterKind, error) {
	switch kind := ParameterKind(strings.ToLower(strings.TrimSpace(value))); kind {
	case "":
		return KindString, nil
	case KindString, KindDouble, KindInteger, KindBoolean, KindChoice, KindRGBA:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown parameter type %q", value)
	}
}

// Parameter is a copy of a named effect parameter.
type Parameter struct {
	Name  string
	Kind  ParameterKind
	Value string
}

// StringValue returns the value when the parameter is string typed.
func (p Parameter) StringValue() (string, bool) {
	if p.Kind != KindString {
		return "", false
	}
	return p.Value, true
}
