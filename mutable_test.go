package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/romdo/go-debounce/v2/clock"
)

func TestNewMutable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		wait      time.Duration
		maxWait   time.Duration
		options   []Option
		calls     []int64
		resets    []int64
		wantFuncs []int
		wantAt    []int64
	}{
		{
			name:      "one trigger",
			wait:      200 * time.Millisecond,
			calls:     []int64{100},
			wantFuncs: []int{0},
			wantAt:    []int64{300},
		},
		{
			name:      "two separate triggers",
			wait:      200 * time.Millisecond,
			calls:     []int64{100, 400},
			wantFuncs: []int{0, 1},
			wantAt:    []int64{300, 600},
		},
		{
			name:      "last function wins",
			wait:      200 * time.Millisecond,
			calls:     []int64{100, 150, 200, 250},
			wantFuncs: []int{3},
			wantAt:    []int64{450},
		},
		{
			name:      "many calls, one cancel, two triggers",
			wait:      200 * time.Millisecond,
			calls:     []int64{100, 150, 200, 600, 650, 700, 750, 1200},
			resets:    []int64{350},
			wantFuncs: []int{6, 7},
			wantAt:    []int64{950, 1400},
		},
		{
			name:      "leading",
			wait:      200 * time.Millisecond,
			options:   []Option{WithLeading(true)},
			calls:     []int64{100, 150, 200},
			wantFuncs: []int{0, 2},
			wantAt:    []int64{100, 400},
		},
		{
			name:      "with max wait",
			wait:      100 * time.Millisecond,
			maxWait:   250 * time.Millisecond,
			calls:     []int64{0, 80, 160, 240, 320, 400},
			wantFuncs: []int{3, 5},
			wantAt:    []int64{250, 500},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clk := clock.NewFake(epoch)
			opts := append([]Option{WithSource(clk)}, tt.options...)

			var d func(func())
			var cancel func()
			if tt.maxWait > 0 {
				d, cancel = NewMutableWithMaxWait(tt.wait, tt.maxWait, opts...)
			} else {
				d, cancel = NewMutable(tt.wait, opts...)
			}

			var gotFuncs []int
			var gotAt []int64
			n := 0
			call := func() {
				i := n
				n++
				d(func() {
					gotFuncs = append(gotFuncs, i)
					gotAt = append(gotAt, clk.Now().Sub(epoch).Milliseconds())
				})
			}

			runTimeline(clk, tt.wait, tt.calls, tt.resets, call, cancel)

			assert.Equal(t, tt.wantFuncs, gotFuncs)
			assert.Equal(t, tt.wantAt, gotAt)
		})
	}
}

func TestNewMutable_nilFunc(t *testing.T) {
	t.Parallel()

	clk := clock.NewFake(epoch)
	d, _ := NewMutable(100*time.Millisecond, WithSource(clk))

	var called int
	d(func() { called++ })
	d(nil)
	clk.Advance(time.Second)

	assert.Equal(t, 0, called)
}

func TestNewMutable_concurrent(t *testing.T) {
	t.Parallel()

	wait := 5 * time.Millisecond
	d, cancel := NewMutableWithMaxWait(wait, 4*wait)

	var n int64
	f := func() { atomic.AddInt64(&n, 1) }

	wg := sync.WaitGroup{}
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()

			for i := 0; i < 200; i++ {
				if (g+i)%20 == 0 {
					cancel()
				} else {
					d(f)
				}
				if i%25 == 0 {
					time.Sleep(wait)
				}
			}
		}(g)
	}
	wg.Wait()

	cancel()
	before := atomic.LoadInt64(&n)

	time.Sleep(wait * 6)
	assert.Equal(t, before, atomic.LoadInt64(&n))
}
