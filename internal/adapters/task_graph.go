package adapters

import (
	"context"
	"reflect"
	"slices"
	"sync"

	"transform-deps/internal/ports"
	"transform-deps/internal/types"
)

// TaskGraphCollector walks task dependency containers and records the
// producer tasks they declare, in first-seen order. Each comparable container
// is visited once. Containers that read project state have their owning
// project recorded, so the caller knows which project locks the run needs.
type TaskGraphCollector struct {
	mu        sync.Mutex
	pending   []ports.TaskDependencyContainer
	seenNodes map[ports.TaskDependencyContainer]struct{}
	nodes     []ports.TaskDependencyContainer
	seenTasks map[string]struct{}
	tasks     []string
	projects  []types.ComponentID
}

func NewTaskGraphCollector() *TaskGraphCollector {
	return &TaskGraphCollector{
		seenNodes: map[ports.TaskDependencyContainer]struct{}{},
		seenTasks: map[string]struct{}{},
	}
}

func (c *TaskGraphCollector) Add(dependency ports.TaskDependencyContainer) {
	if dependency == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if reflect.TypeOf(dependency).Comparable() {
		if _, seen := c.seenNodes[dependency]; seen {
			return
		}
		c.seenNodes[dependency] = struct{}{}
	}
	c.nodes = append(c.nodes, dependency)
	c.pending = append(c.pending, dependency)
	if user, ok := dependency.(ports.ProjectStateUser); ok {
		if project, owned := user.OwningProject(); owned && !slices.Contains(c.projects, project) {
			c.projects = append(c.projects, project)
		}
	}
}

func (c *TaskGraphCollector) AddTask(path string) {
	if path == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, seen := c.seenTasks[path]; seen {
		return
	}
	c.seenTasks[path] = struct{}{}
	c.tasks = append(c.tasks, path)
}

// Collect visits roots and everything they declare, transitively.
func (c *TaskGraphCollector) Collect(ctx context.Context, roots ...ports.TaskDependencyContainer) error {
	for _, root := range roots {
		c.Add(root)
	}
	for {
		next, ok := c.pop()
		if !ok {
			return nil
		}
		if err := next.VisitDependencies(ctx, c); err != nil {
			return err
		}
	}
}

func (c *TaskGraphCollector) pop() (ports.TaskDependencyContainer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 {
		return nil, false
	}
	next := c.pending[0]
	c.pending = c.pending[1:]
	return next, true
}

func (c *TaskGraphCollector) Tasks() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.tasks...)
}

// OwningProjects returns the projects whose state the collected work reads.
func (c *TaskGraphCollector) OwningProjects() []types.ComponentID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.ComponentID(nil), c.projects...)
}

func (c *TaskGraphCollector) Nodes() []ports.TaskDependencyContainer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ports.TaskDependencyContainer(nil), c.nodes...)
}

var _ ports.TaskDependencyContext = (*TaskGraphCollector)(nil)
