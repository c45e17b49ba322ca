// Package taskrunner hosts the shared abstractions for executing chore task
// graphs. It exposes the `Executor` interface plus helpers (`Factory`,
// `Resolve`) so CLI packages can inject runner dependencies once and obtain an
// executor, while unit tests can swap in fakes. This keeps the execution logic
// in `internal/runner` reusable without wiring duplication.
package taskrunner
