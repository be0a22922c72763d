package pipeline

import "context"

// Stage is one unit of work in the pipeline.
type Stage interface {
	// ID returns the stable identifier used in logs and error wrapping.
	ID() string

	// Name returns the human-readable name.
	Name() string

	// Run executes the stage against the shared state.
	Run(ctx context.Context, state *State) error
}

// stageFunc adapts a function to the Stage interface.
type stageFunc struct {
	id   string
	name string
	fn   func(ctx context.Context, state *State) error
}

// NewStage wraps a function as a Stage.
func NewStage(id, name string, fn func(ctx context.Context, state *State) error) Stage {
	return &stageFunc{id: id, name: name, fn: fn}
}

func (s *stageFunc) ID() string   { return s.id }
func (s *stageFunc) Name() string { return s.name }

func (s *stageFunc) Run(ctx context.Context, state *State) error {
	return s.fn(ctx, state)
}
