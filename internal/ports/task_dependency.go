package ports

import "context"

// TaskDependencyContainer is anything that can declare the work that must
// run before it.
type TaskDependencyContainer interface {
	VisitDependencies(ctx context.Context, deps TaskDependencyContext) error
}

// TaskDependencyContext receives prerequisites from containers. It is
// implemented by the scheduler.
type TaskDependencyContext interface {
	Add(dependency TaskDependencyContainer)
	AddTask(path string)
}
