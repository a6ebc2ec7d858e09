package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/namelens/handlescan/internal/core"
	"github.com/namelens/handlescan/internal/core/checker"
	"github.com/namelens/handlescan/internal/metrics"
)

// ErrNoQueries is returned when a batch has nothing to check.
var ErrNoQueries = errors.New("at least one query is required")

// ConfigError reports a batch that cannot start.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Task is one query against one platform.
type Task struct {
	Query    string
	Platform core.Platform
}

// Orchestrator fans a batch of queries out across platforms.
type Orchestrator struct {
	Dispatcher *Dispatcher
	// Concurrency caps in-flight tasks. Zero means unbounded.
	Concurrency int
	// PrimeTokens fetches every platform token before the batch starts.
	PrimeTokens bool
	Logger      *logging.Logger
}

// Plan builds the query-major cross product of tasks. Queries are trimmed and
// deduplicated; an empty platform list selects every registered platform.
func (o *Orchestrator) Plan(queries []string, platforms []core.Platform) ([]Task, error) {
	queries = core.NormalizeQueries(queries)
	if len(queries) == 0 {
		return nil, &ConfigError{Err: ErrNoQueries}
	}

	registry := o.Dispatcher.Registry
	if len(platforms) == 0 {
		platforms = registry.Platforms()
	}
	for _, platform := range platforms {
		if !platform.Known() {
			return nil, &ConfigError{Err: fmt.Errorf("%s is not a valid platform", platform)}
		}
		if _, ok := registry.Checker(platform); !ok {
			return nil, &ConfigError{Err: fmt.Errorf("%s is not enabled", platform)}
		}
	}

	tasks := make([]Task, 0, len(queries)*len(platforms))
	for _, query := range queries {
		for _, platform := range platforms {
			tasks = append(tasks, Task{Query: query, Platform: platform})
		}
	}
	return tasks, nil
}

// Prime concurrently resolves the token of every selected platform that needs one.
func (o *Orchestrator) Prime(ctx context.Context, platforms []core.Platform) {
	registry := o.Dispatcher.Registry
	if len(platforms) == 0 {
		platforms = registry.Platforms()
	}

	var g errgroup.Group
	for _, platform := range platforms {
		c, ok := registry.Checker(platform)
		if !ok {
			continue
		}
		p, ok := c.(checker.Prerequester)
		if !ok {
			continue
		}
		g.Go(func() error {
			if _, err := p.Token(ctx); err != nil && o.Logger != nil {
				o.Logger.Warn("Token prefetch failed", zap.String("platform", string(platform)), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Stream runs the batch and calls fn for each response as it completes.
// Calls to fn are serialized. Responses arrive in completion order.
func (o *Orchestrator) Stream(ctx context.Context, queries []string, platforms []core.Platform, fn func(*core.Response)) error {
	tasks, err := o.Plan(queries, platforms)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	o.execute(ctx, tasks, platforms, func(_ int, response *core.Response) {
		mu.Lock()
		defer mu.Unlock()
		fn(response)
	})
	return nil
}

// Run runs the batch and returns responses ordered by query, then platform.
// Platforms without a capability for a query's shape contribute nothing.
func (o *Orchestrator) Run(ctx context.Context, queries []string, platforms []core.Platform) ([]*core.Response, error) {
	tasks, err := o.Plan(queries, platforms)
	if err != nil {
		return nil, err
	}

	slots := make([]*core.Response, len(tasks))
	o.execute(ctx, tasks, platforms, func(i int, response *core.Response) {
		slots[i] = response
	})

	responses := make([]*core.Response, 0, len(slots))
	for _, response := range slots {
		if response != nil {
			responses = append(responses, response)
		}
	}
	return responses, nil
}

func (o *Orchestrator) execute(ctx context.Context, tasks []Task, platforms []core.Platform, emit func(int, *core.Response)) {
	start := time.Now()
	if o.PrimeTokens {
		o.Prime(ctx, platforms)
	}

	var g errgroup.Group
	if o.Concurrency > 0 {
		g.SetLimit(o.Concurrency)
	}

	for i, task := range tasks {
		if ctx.Err() != nil {
			if response := o.cancelled(task); response != nil {
				emit(i, response)
			}
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				if response := o.cancelled(task); response != nil {
					emit(i, response)
				}
				return nil
			}
			began := time.Now()
			response := o.Dispatcher.Dispatch(ctx, task.Query, task.Platform)
			if response == nil {
				return nil
			}
			metrics.RecordResponse(response, time.Since(began))
			emit(i, response)
			return nil
		})
	}
	_ = g.Wait()

	metrics.RecordBatch(ctx.Err() == nil)
	if o.Logger != nil {
		o.Logger.Debug("Batch completed",
			zap.Int("tasks", len(tasks)),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// Expected counts the tasks that will yield a response: those whose platform
// has a capability for the query's shape.
func (o *Orchestrator) Expected(tasks []Task) int {
	n := 0
	for _, task := range tasks {
		if c, ok := o.Dispatcher.Registry.Checker(task.Platform); ok && supports(c, task.Query) {
			n++
		}
	}
	return n
}

// cancelled reports a task that never started because the batch was cancelled.
// Capability mismatches still yield nothing.
func (o *Orchestrator) cancelled(task Task) *core.Response {
	c, ok := o.Dispatcher.Registry.Checker(task.Platform)
	if !ok || !supports(c, task.Query) {
		return nil
	}
	response := core.Failed(task.Platform, task.Query, core.FailureMessage(context.Canceled))
	metrics.RecordResponse(response, 0)
	return response
}

func supports(c checker.Checker, query string) bool {
	if core.IsEmail(query) {
		_, ok := c.(checker.EmailChecker)
		return ok
	}
	_, ok := c.(checker.UsernameChecker)
	return ok
}
