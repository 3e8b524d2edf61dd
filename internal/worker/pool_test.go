package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsAllJobs(t *testing.T) {
	p := NewPool(4)

	var n atomic.Int64
	for i := 0; i < 200; i++ {
		p.Submit(func() { n.Add(1) })
	}
	p.Stop()

	assert.Equal(t, int64(200), n.Load())
}

func TestPoolStopDrainsQueue(t *testing.T) {
	p := NewPool(1)

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		p.Submit(func() { order = append(order, i) })
	}
	p.Stop()

	// Single worker preserves submission order.
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}
