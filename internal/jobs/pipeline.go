package jobs

import (
	"context"
	"errors"
	"fmt"
)

type Step interface {
	Name() string
	Run(ctx context.Context, p *placement) error
}

// Pipeline runs steps in order until one fails or marks the placement done.
// Finally steps run after the main steps unless a step failed.
type Pipeline struct {
	steps   []Step
	finally []Step
}

func NewPipeline(steps ...Step) (Pipeline, error) {
	var p Pipeline

	if len(steps) == 0 {
		return p, errors.New("steps are empty")
	}

	if err := checkSteps(steps); err != nil {
		return p, err
	}

	return Pipeline{steps: steps}, nil
}

// WithFinally returns a copy of p running steps even after an early finish.
func (p Pipeline) WithFinally(steps ...Step) (Pipeline, error) {
	if err := checkSteps(steps); err != nil {
		return p, err
	}

	p.finally = append(p.finally[:len(p.finally):len(p.finally)], steps...)

	return p, nil
}

func checkSteps(steps []Step) error {
	for idx, step := range steps {
		if step == nil {
			return fmt.Errorf("step[%d] is nil", idx)
		}
	}
	return nil
}

func (p Pipeline) Run(ctx context.Context, pl *placement) error {
	for idx, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := step.Run(ctx, pl); err != nil {
			return fmt.Errorf("step.Run[%d][%s]: %w", idx, step.Name(), err)
		}

		if pl.done {
			break
		}
	}

	for idx, step := range p.finally {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := step.Run(ctx, pl); err != nil {
			return fmt.Errorf("finally.Run[%d][%s]: %w", idx, step.Name(), err)
		}
	}

	return nil
}
