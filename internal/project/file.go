package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"captionexport/internal/timeline"
)

// fileProject is the tree schema shared by the JSON, YAML, and TOML formats.
type fileProject struct {
	Name      string      `json:"name" yaml:"name" toml:"name"`
	FilePath  string      `json:"file_path" yaml:"file_path" toml:"file_path"`
	FrameRate float64     `json:"frame_rate" yaml:"frame_rate" toml:"frame_rate"`
	Tracks    []fileTrack `json:"tracks" yaml:"tracks" toml:"tracks"`
}

type fileTrack struct {
	Kind   string      `json:"kind" yaml:"kind" toml:"kind"`
	Events []fileEvent `json:"events" yaml:"events" toml:"events"`
}

type fileEvent struct {
	Kind   string `json:"kind" yaml:"kind" toml:"kind"`
	Start  int64  `json:"start" yaml:"start" toml:"start"`
	Length int64  `json:"length" yaml:"length" toml:"length"`
	// ActiveTake defaults to the first take when omitted.
	ActiveTake *int       `json:"active_take" yaml:"active_take" toml:"active_take"`
	Takes      []fileTake `json:"takes" yaml:"takes" toml:"takes"`
}

type fileTake struct {
	Name  string     `json:"name" yaml:"name" toml:"name"`
	Media *fileMedia `json:"media" yaml:"media" toml:"media"`
}

type fileMedia struct {
	Path      string         `json:"path" yaml:"path" toml:"path"`
	Generator *fileGenerator `json:"generator" yaml:"generator" toml:"generator"`
}

type fileGenerator struct {
	Name       string          `json:"name" yaml:"name" toml:"name"`
	Parameters []fileParameter `json:"parameters" yaml:"parameters" toml:"parameters"`
}

// fileParameter keeps Value untyped so numeric and boolean parameters may be
// written unquoted.
type fileParameter struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Type  string `json:"type" yaml:"type" toml:"type"`
	Value any    `json:"value" yaml:"value" toml:"value"`
}

// scalarString renders a decoded scalar parameter value.
func scalarString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("value must be a scalar, got %T", value)
	}
}

var errNegativeStart = errors.New("start must not be negative")

func (f fileProject) toProject() (*Project, error) {
	if f.FrameRate < 0 {
		return nil, fmt.Errorf("frame_rate must not be negative, got %v", f.FrameRate)
	}
	p := New(f.Name).SetFrameRate(f.FrameRate).SetFilePath(f.FilePath)
	for ti, ft := range f.Tracks {
		kind, err := ParseKind(ft.Kind, KindVideo)
		if err != nil {
			return nil, fmt.Errorf("tracks[%d]: %w", ti, err)
		}
		track := p.AddTrack(kind)
		for ei, fe := range ft.Events {
			if err := fe.addTo(track); err != nil {
				return nil, fmt.Errorf("tracks[%d].events[%d]: %w", ti, ei, err)
			}
		}
	}
	return p, nil
}

func (fe fileEvent) addTo(track *Track) error {
	if fe.Start < 0 {
		return errNegativeStart
	}
	kind, err := ParseKind(fe.Kind, track.kind)
	if err != nil {
		return err
	}
	event := track.AddEvent(fe.Start, fe.Length).SetKind(kind)
	if fe.ActiveTake != nil {
		event.SetActiveTake(*fe.ActiveTake)
	}
	for ki, take := range fe.Takes {
		media, err := take.Media.toMedia()
		if err != nil {
			return fmt.Errorf("takes[%d]: %w", ki, err)
		}
		event.AddTake(take.Name, media)
	}
	return nil
}

func (fm *fileMedia) toMedia() (*Media, error) {
	if fm == nil {
		return nil, nil
	}
	if fm.Generator == nil {
		return NewMedia(fm.Path, nil), nil
	}
	params := make([]timeline.Parameter, 0, len(fm.Generator.Parameters))
	for pi, fp := range fm.Generator.Parameters {
		kind, err := timeline.ParseParameterKind(fp.Type)
		if err != nil {
			return nil, fmt.Errorf("generator.parameters[%d]: %w", pi, err)
		}
		value, err := scalarString(fp.Value)
		if err != nil {
			return nil, fmt.Errorf("generator.parameters[%d]: %w", pi, err)
		}
		params = append(params, timeline.Parameter{Name: fp.Name, Kind: kind, Value: value})
	}
	return NewMedia(fm.Path, NewGenerator(fm.Generator.Name, params...)), nil
}
