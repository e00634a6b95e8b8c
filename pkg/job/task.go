package job

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// taskExecutor runs one registered task.
type taskExecutor interface {
	Execute(ctx context.Context) error
}

// taskRegistry stores registered task executors by name.
type taskRegistry struct {
	executors map[string]taskExecutor
	mu        sync.RWMutex
}

func newTaskRegistry() *taskRegistry {
	return &taskRegistry{
		executors: make(map[string]taskExecutor),
	}
}

func (r *taskRegistry) register(name string, executor taskExecutor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executors[name] = executor
}

func (r *taskRegistry) get(name string) (taskExecutor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	executor, ok := r.executors[name]
	return executor, ok
}

// names returns all registered task names, sorted.
func (r *taskRegistry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.executors))
}
