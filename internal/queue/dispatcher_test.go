package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_FIFO(t *testing.T) {
	d := NewDispatcher()

	var mu sync.Mutex
	var order []int

	for i := 0; i < 100; i++ {
		i := i
		d.Enqueue(func(ctx context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
	}

	d.Close()

	assert.Len(t, order, 100)
	for i, got := range order {
		assert.Equal(t, i, got)
	}
}

func TestDispatcher_FailureDoesNotStall(t *testing.T) {
	d := NewDispatcher()

	var mu sync.Mutex
	var ran []string

	d.Enqueue(func(ctx context.Context) error {
		return errors.New("boom")
	})
	d.Enqueue(func(ctx context.Context) error {
		mu.Lock()
		ran = append(ran, "after")
		mu.Unlock()
		return nil
	})

	d.Close()

	assert.Equal(t, []string{"after"}, ran)
}

func TestDispatcher_CloseDrainsPending(t *testing.T) {
	d := NewDispatcher()

	var mu sync.Mutex
	count := 0

	block := make(chan struct{})
	d.Enqueue(func(ctx context.Context) error {
		<-block
		return nil
	})
	for i := 0; i < 10; i++ {
		d.Enqueue(func(ctx context.Context) error {
			mu.Lock()
			count++
			mu.Unlock()
			return nil
		})
	}

	close(block)
	d.Close()

	assert.Equal(t, 10, count)
}
