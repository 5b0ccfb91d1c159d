// Package runner coordinates message exchange with a hosted model provider
// and dispatches tool calls.
//
// Invariants:
//   - The loop is bounded by MaxIterations; hitting the cap without a final
//     text answer returns ErrMaxIterations.
//   - A tool call and its corresponding result stay adjacent within the
//     conversation to preserve execution context.
//   - Tool failures are fed back to the model as error results; they never
//     abort the loop.
//
// Flow:
//
//	user(text) -> assistant(tool calls) -> tool(results) -> assistant(text)
package runner
