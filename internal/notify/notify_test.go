package notify

import (
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestBoard() (*Board, *clock) {
	c := &clock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	b := NewBoard(0)
	b.now = c.now
	return b, c
}

func TestToastExpiresAfterTTL(t *testing.T) {
	b, c := newTestBoard()
	b.Publish(1, Success, "Added to cart")

	c.t = c.t.Add(2 * time.Second)
	if got := len(b.Active(1)); got != 1 {
		t.Fatalf("Expected toast still active after 2s, got %d", got)
	}

	c.t = c.t.Add(time.Second)
	if got := len(b.Active(1)); got != 0 {
		t.Errorf("Expected toast gone after 3s, got %d", got)
	}
}

func TestDismiss(t *testing.T) {
	b, _ := newTestBoard()
	first := b.Publish(1, Success, "one")
	b.Publish(1, Failure, "two")

	if !b.Dismiss(1, first.ID) {
		t.Fatal("Expected dismiss to find the toast")
	}
	if b.Dismiss(1, first.ID) {
		t.Error("Expected second dismiss to be a no-op")
	}

	active := b.Active(1)
	if len(active) != 1 || active[0].Message != "two" {
		t.Errorf("Unexpected active toasts: %+v", active)
	}
}

func TestToastsArePerUser(t *testing.T) {
	b, _ := newTestBoard()
	b.Publish(1, Success, "mine")

	if got := len(b.Active(2)); got != 0 {
		t.Errorf("Expected no toasts for another user, got %d", got)
	}
}
