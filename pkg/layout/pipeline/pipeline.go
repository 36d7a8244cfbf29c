// Package pipeline runs generation steps over a shared context in priority
// order. Which parts of the context a step touches is expressed by the type
// constraint on its context parameter.
package pipeline

import (
	"github.com/pkg/errors"
	"github.com/zyedidia/generic/avl"
)

// Step is one stage of generation.
type Step[T any] interface {
	Apply(ctx T) error
}

// StepFunc adapts a function to a Step.
type StepFunc[T any] func(ctx T) error

// Apply calls f(ctx).
func (f StepFunc[T]) Apply(ctx T) error {
	return f(ctx)
}

// Observer is told about every step right after it ran. It may be nil.
type Observer[T any] func(priority Priority, step Step[T], ctx T)

// Pipeline is an ordered multimap from priority to steps. Steps with equal
// priority run in the order they were added.
type Pipeline[T any] struct {
	steps *avl.Tree[Priority, []Step[T]]
	count int
}

// New creates an empty pipeline.
func New[T any]() *Pipeline[T] {
	return &Pipeline[T]{steps: avl.New[Priority, []Step[T]](Priority.Less)}
}

// Add schedules a step at the given priority.
func (p *Pipeline[T]) Add(priority Priority, step Step[T]) {
	existing, _ := p.steps.Get(priority)
	p.steps.Put(priority, append(existing, step))
	p.count++
}

// Len returns the number of steps.
func (p *Pipeline[T]) Len() int {
	return p.count
}

// Each calls fn for every step in execution order.
func (p *Pipeline[T]) Each(fn func(priority Priority, step Step[T])) {
	p.steps.Each(func(priority Priority, steps []Step[T]) {
		for _, step := range steps {
			fn(priority, step)
		}
	})
}

// Apply runs every step in order against ctx and stops at the first error.
func (p *Pipeline[T]) Apply(ctx T, observer Observer[T]) error {
	var err error
	p.Each(func(priority Priority, step Step[T]) {
		if err != nil {
			return
		}
		if err = step.Apply(ctx); err != nil {
			err = errors.Wrapf(err, "step %T at %v", step, priority)
			return
		}
		if observer != nil {
			observer(priority, step, ctx)
		}
	})
	return err
}
