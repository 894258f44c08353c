package checkout

import (
	"context"
	"fmt"

	"github.com/safar/storefront/internal/logger"
	"go.uber.org/zap"
)

// Step is one write in a checkout sequence. Compensate undoes Run once Run
// has succeeded; nil means the step is left in place.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga runs steps in order and stops at the first failure.
type Saga struct {
	steps []Step
	log   *zap.Logger
}

func NewSaga(log *zap.Logger) *Saga {
	return &Saga{log: logger.OrNop(log)}
}

func (s *Saga) Add(steps ...Step) {
	s.steps = append(s.steps, steps...)
}

// StepError reports the step that failed and the ones that completed
// before it.
type StepError struct {
	Step      string
	Completed []string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Execute runs every step. On failure it calls the compensation of each
// completed step in reverse order and returns a *StepError.
func (s *Saga) Execute(ctx context.Context) ([]string, error) {
	completed := make([]string, 0, len(s.steps))
	for i, step := range s.steps {
		if err := ctx.Err(); err != nil {
			s.compensate(i)
			return completed, &StepError{Step: step.Name, Completed: completed, Err: err}
		}
		if err := step.Run(ctx); err != nil {
			s.compensate(i)
			return completed, &StepError{Step: step.Name, Completed: completed, Err: err}
		}
		completed = append(completed, step.Name)
	}
	return completed, nil
}

func (s *Saga) compensate(failed int) {
	ctx := context.Background()
	for i := failed - 1; i >= 0; i-- {
		step := s.steps[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			s.log.Error("compensation failed", zap.String("step", step.Name), zap.Error(err))
		}
	}
}
