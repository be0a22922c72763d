package pipeline

import (
	"fmt"
	"sort"

	"wranglecli/internal/dataframe"
	"wranglecli/internal/errors"
)

// State is the shared state of one pipeline run: the named frames stages
// produce and consume, plus the run ID. The runner hands it to one stage at a
// time, so access is unsynchronized.
type State struct {
	runID  string
	frames map[string]*dataframe.DataFrame
}

// NewState creates an empty state for the given run.
func NewState(runID string) *State {
	return &State{
		runID:  runID,
		frames: make(map[string]*dataframe.DataFrame),
	}
}

// RunID returns the run identifier.
func (s *State) RunID() string { return s.runID }

// SetFrame stores a frame under the given name, replacing any previous one.
func (s *State) SetFrame(name string, df *dataframe.DataFrame) {
	s.frames[name] = df
}

// Frame returns the named frame. Asking for a frame no stage has produced is
// a wiring mistake and fails with a SchemaError.
func (s *State) Frame(name string) (*dataframe.DataFrame, error) {
	df, ok := s.frames[name]
	if !ok {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("no frame named %s in pipeline state", name), nil).
			WithContext("frame", name)
	}
	return df, nil
}

// HasFrame reports whether the named frame exists.
func (s *State) HasFrame(name string) bool {
	_, ok := s.frames[name]
	return ok
}

// FrameNames returns the stored frame names, sorted.
func (s *State) FrameNames() []string {
	names := make([]string, 0, len(s.frames))
	for name := range s.frames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
