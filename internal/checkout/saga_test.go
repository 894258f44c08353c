package checkout

import (
	"context"
	"errors"
	"testing"
)

func TestSagaCompensatesCompletedStepsInReverse(t *testing.T) {
	var undone []string
	step := func(name string, fail bool) Step {
		return Step{
			Name: name,
			Run: func(context.Context) error {
				if fail {
					return errors.New("nope")
				}
				return nil
			},
			Compensate: func(context.Context) error {
				undone = append(undone, name)
				return nil
			},
		}
	}

	s := NewSaga(nil)
	s.Add(step("a", false), step("b", false), step("c", true), step("d", false))

	completed, err := s.Execute(context.Background())

	var se *StepError
	if !errors.As(err, &se) || se.Step != "c" {
		t.Fatalf("Expected failure at c, got %v", err)
	}
	if len(completed) != 2 {
		t.Errorf("Expected 2 completed, got %v", completed)
	}
	if len(undone) != 2 || undone[0] != "b" || undone[1] != "a" {
		t.Errorf("Expected compensation b then a, got %v", undone)
	}
}

func TestSagaStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	s := NewSaga(nil)
	s.Add(Step{Name: "a", Run: func(context.Context) error { ran = true; return nil }})

	if _, err := s.Execute(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if ran {
		t.Error("Expected step not to run")
	}
}
