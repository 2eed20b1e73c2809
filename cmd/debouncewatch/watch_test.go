package main

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romdo/go-debounce/v2"
	"github.com/romdo/go-debounce/v2/clock"
)

func TestRelevant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event fsnotify.Event
		exts  []string
		want  bool
	}{
		{
			name:  "write without filter",
			event: fsnotify.Event{Name: "main.go", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "chmod is ignored",
			event: fsnotify.Event{Name: "main.go", Op: fsnotify.Chmod},
			want:  false,
		},
		{
			name:  "matching extension",
			event: fsnotify.Event{Name: "pkg/a.go", Op: fsnotify.Create},
			exts:  []string{".go"},
			want:  true,
		},
		{
			name:  "extension without dot",
			event: fsnotify.Event{Name: "pkg/a.go", Op: fsnotify.Rename},
			exts:  []string{"md", "go"},
			want:  true,
		},
		{
			name:  "other extension",
			event: fsnotify.Event{Name: "README.md", Op: fsnotify.Remove},
			exts:  []string{".go"},
			want:  false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, relevant(tt.event, tt.exts))
		})
	}
}

func TestWatchLoop(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	var runs [][]string
	fn := func(_ any, paths ...string) (int, error) {
		runs = append(runs, paths)

		return len(runs), nil
	}
	d, err := debounce.NewDebouncer(
		100*time.Millisecond, fn,
		debounce.WithSource(clk),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	done := make(chan error, 1)

	go func() {
		done <- watchLoop(ctx, zerolog.Nop(), events, errs, []string{".go"}, d)
	}()

	events <- fsnotify.Event{Name: "a.go", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "b.go", Op: fsnotify.Write}
	errs <- assert.AnError
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop")
	}

	assert.Equal(t, [][]string{{"b.go"}}, runs)
	assert.False(t, d.Pending())
}

func TestWatchLoop_eventsClosed(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	var runs int
	fn := func(_ any, _ ...string) (int, error) {
		runs++

		return runs, nil
	}
	d, err := debounce.NewDebouncer(
		100*time.Millisecond, fn,
		debounce.WithSource(clk),
	)
	require.NoError(t, err)

	events := make(chan fsnotify.Event, 1)
	events <- fsnotify.Event{Name: "a.go", Op: fsnotify.Write}
	close(events)

	err = watchLoop(context.Background(), zerolog.Nop(), events, nil, nil, d)
	require.NoError(t, err)

	assert.False(t, d.Pending())
	clk.Advance(time.Second)
	assert.Equal(t, 0, runs)
}

func TestRunner(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	r := &runner{
		command: []string{"sh", "-c", `test "$DEBOUNCEWATCH_PATH" = b.go`},
		log:     zerolog.Nop(),
	}

	n, err := r.run(nil, "a.go", "b.go")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.run(nil, "a.go")
	assert.Error(t, err)
	assert.Equal(t, 2, n)
}

func TestWatchLoop_errorsClosed(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	var runs [][]string
	fn := func(_ any, paths ...string) (int, error) {
		runs = append(runs, paths)

		return len(runs), nil
	}
	d, err := debounce.NewDebouncer(
		100*time.Millisecond, fn,
		debounce.WithSource(clk),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	close(errs)
	done := make(chan error, 1)

	go func() {
		done <- watchLoop(ctx, zerolog.Nop(), events, errs, nil, d)
	}()

	// The closed error channel is dropped from the select, so events are
	// still served one by one.
	events <- fsnotify.Event{Name: "a.go", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "b.go", Op: fsnotify.Write}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop")
	}

	assert.Equal(t, [][]string{{"b.go"}}, runs)
}
