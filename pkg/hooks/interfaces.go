//go:generate mockgen -destination=./mocks/executor.go . Executor
package hooks

import "context"

// Executor runs a single hook script.
type Executor interface {
	// Run executes script for the generation described by hctx. The working
	// directory is already hctx.ProjectDir when Run is called.
	Run(ctx context.Context, script string, hctx Context) error
}
