package engine_test

import (
	"context"
	"testing"

	"github.com/medvoice/inscribe/internal/engine"
	"github.com/medvoice/inscribe/pkg/editor"
	"github.com/medvoice/inscribe/pkg/editor/mock"
)

// Spacing decisions depend on the text left by the previous fragment, so
// the queue must apply fragments strictly in submission order.
func TestQueue_FIFOOrder(t *testing.T) {
	t.Parallel()

	a := &mock.Adapter{Selection: editor.Range{}}
	q := engine.NewQueue(engine.New(a), 8)
	q.Start(context.Background())

	fragments := []string{
		"no acute findings period",
		"stable appearance period",
		"recommend follow up period",
	}
	for _, f := range fragments {
		if err := q.Submit(f); err != nil {
			t.Fatalf("Submit(%q): %v", f, err)
		}
	}
	q.Close()
	q.Wait()

	want := "No acute findings. Stable appearance. Recommend follow up."
	if a.Text != want {
		t.Errorf("Text = %q, want %q", a.Text, want)
	}
}

func TestQueue_SubmitAfterClose(t *testing.T) {
	t.Parallel()

	a := &mock.Adapter{}
	q := engine.NewQueue(engine.New(a), 1)
	q.Start(context.Background())
	q.Close()
	q.Wait()

	if err := q.Submit("late"); err != engine.ErrQueueClosed {
		t.Errorf("Submit after Close = %v, want ErrQueueClosed", err)
	}
}

func TestQueue_ContextCancelStopsWorker(t *testing.T) {
	t.Parallel()

	a := &mock.Adapter{}
	q := engine.NewQueue(engine.New(a), 1)

	ctx, cancel := context.WithCancel(context.Background())
	q.Start(ctx)
	cancel()
	q.Wait()
}

// Submitting more fragments than the buffer holds must block, not drop:
// every fragment still lands.
func TestQueue_BackpressureDeliversAll(t *testing.T) {
	t.Parallel()

	a := &mock.Adapter{}
	q := engine.NewQueue(engine.New(a), 1)
	q.Start(context.Background())

	const n = 50
	for i := 0; i < n; i++ {
		if err := q.Submit("x"); err != nil {
			t.Fatalf("Submit #%d: %v", i, err)
		}
	}
	q.Close()
	q.Wait()

	if got := len(a.ReplaceCalls); got != n {
		t.Errorf("ReplaceRange called %d times, want %d", got, n)
	}
}
