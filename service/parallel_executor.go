package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Default values for the parallel executor
const (
	DefaultTimeout = 5 * time.Minute
)

// Task is one named unit of work.
type Task struct {
	Name string
	Run  func() error
}

// TaskError represents a single task failure
type TaskError struct {
	TaskName string
	Err      error
}

// Error implements the error interface
func (e TaskError) Error() string {
	return fmt.Sprintf("[%s] %v", e.TaskName, e.Err)
}

// Unwrap returns the underlying error
func (e TaskError) Unwrap() error {
	return e.Err
}

// AggregatedError collects all task failures
type AggregatedError struct {
	Errors []TaskError
}

// Error implements the error interface
func (e *AggregatedError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d tasks failed:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap returns the first error for errors.Is/As compatibility
func (e *AggregatedError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0].Err
}

// ParallelExecutor runs tasks concurrently with bounded parallelism.
type ParallelExecutor struct {
	maxConcurrency int
	timeout        time.Duration
}

// NewParallelExecutor creates an executor sized to the machine.
func NewParallelExecutor() *ParallelExecutor {
	return &ParallelExecutor{
		maxConcurrency: runtime.NumCPU(),
		timeout:        DefaultTimeout,
	}
}

// NewParallelExecutorWithConcurrency creates an executor with an explicit
// concurrency bound.
func NewParallelExecutorWithConcurrency(maxConcurrency int) *ParallelExecutor {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &ParallelExecutor{
		maxConcurrency: maxConcurrency,
		timeout:        DefaultTimeout,
	}
}

// Run executes all tasks and collects their failures. Tasks keep running
// after a sibling fails; the aggregated error reports every failure.
func (p *ParallelExecutor) Run(tasks []Task) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrency)

	failures := make(chan TaskError, len(tasks))
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if err := task.Run(); err != nil {
				failures <- TaskError{TaskName: task.Name, Err: err}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	close(failures)

	var collected []TaskError
	for failure := range failures {
		collected = append(collected, failure)
	}
	if len(collected) > 0 {
		return &AggregatedError{Errors: collected}
	}
	return nil
}
