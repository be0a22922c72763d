// Package pipeline runs a sequence of data-wrangling stages over shared
// state.
//
// Execution is strictly sequential: stages run in registration order, each to
// completion before the next begins, and the first error aborts the rest.
// There is no retry and no recovery; the returned error wraps the failing
// stage's ID so the terminal diagnostic identifies the stage and cause.
//
// State holds the named frames the stages produce and consume. Exactly one
// stage owns it at any time, so it is deliberately unsynchronized.
//
// Every run gets a fresh run ID that the logging layer attaches to each
// record emitted during the run.
//
// Example:
//
//	runner := pipeline.NewRunner(logger,
//		pipeline.NewStage("load", "Load dataset", loadFn),
//		pipeline.NewStage("clean", "Clean dataset", cleanFn),
//	)
//	state, err := runner.Execute(ctx)
package pipeline
