package ports

import (
	"context"

	"transform-deps/internal/types"
)

// FileCollection is a lazily resolved set of files. Resolution happens on
// Files and may fail.
type FileCollection interface {
	TaskDependencyContainer
	DisplayName() string
	Files(ctx context.Context) ([]string, error)
}

type FilteredResultFactory interface {
	ResultsMatching(attributes types.Attributes, predicate func(types.ComponentID) bool) FileCollection
}
