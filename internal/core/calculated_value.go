package core

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"transform-deps/internal/ports"
	"transform-deps/internal/types"
)

// ValueCalculator computes the value held by a CalculatedValue and declares
// the work that has to run before the calculation can succeed.
type ValueCalculator[T any] interface {
	ports.TaskDependencyContainer
	Calculate(ctx context.Context) (T, error)
}

// CalculatedValue is a lazily computed value. The calculator runs at most
// once, triggered by the first Value or FinalizeIfNotAlready call from any
// goroutine, and its outcome is kept for the lifetime of the container.
// Errors and panics raised by the calculator become the failure side of the
// Try returned to every caller.
type CalculatedValue[T any] struct {
	displayName string
	calculator  ValueCalculator[T]

	once      sync.Once
	finalized atomic.Bool
	result    Try[T]
}

func NewCalculatedValue[T any](displayName string, calculator ValueCalculator[T]) *CalculatedValue[T] {
	return &CalculatedValue[T]{
		displayName: displayName,
		calculator:  calculator,
	}
}

func (c *CalculatedValue[T]) DisplayName() string {
	return c.displayName
}

// Value returns the calculated result, computing it first if needed.
func (c *CalculatedValue[T]) Value(ctx context.Context) Try[T] {
	c.FinalizeIfNotAlready(ctx)
	return c.result
}

func (c *CalculatedValue[T]) FinalizeIfNotAlready(ctx context.Context) {
	c.once.Do(func() {
		c.result = c.calculate(ctx)
		c.finalized.Store(true)
	})
}

func (c *CalculatedValue[T]) IsFinalized() bool {
	return c.finalized.Load()
}

// VisitDependencies declares the calculator's prerequisites. Once the value
// is known there is nothing left to wait for.
func (c *CalculatedValue[T]) VisitDependencies(ctx context.Context, deps ports.TaskDependencyContext) error {
	if c.IsFinalized() {
		return nil
	}
	return c.calculator.VisitDependencies(ctx, deps)
}

// OwningProject forwards the calculator's project, if it declares one.
func (c *CalculatedValue[T]) OwningProject() (types.ComponentID, bool) {
	if user, ok := c.calculator.(ports.ProjectStateUser); ok {
		return user.OwningProject()
	}
	return types.ComponentID{}, false
}

func (c *CalculatedValue[T]) calculate(ctx context.Context) (result Try[T]) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = Failed[T](errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to calculate %s: %v", c.displayName, recovered)))
		}
	}()
	log.Ctx(ctx).Debug().Str("value", c.displayName).Msg("calculating value")
	value, err := c.calculator.Calculate(ctx)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("value", c.displayName).Msg("value calculation failed")
		return Failed[T](err)
	}
	return Successful(value)
}

var (
	_ ports.TaskDependencyContainer = (*CalculatedValue[struct{}])(nil)
	_ ports.ProjectStateUser        = (*CalculatedValue[struct{}])(nil)
)

// calculatorFunc is a ValueCalculator without prerequisites.
type calculatorFunc[T any] func(ctx context.Context) (T, error)

func (f calculatorFunc[T]) Calculate(ctx context.Context) (T, error) {
	return f(ctx)
}

func (f calculatorFunc[T]) VisitDependencies(context.Context, ports.TaskDependencyContext) error {
	return nil
}
