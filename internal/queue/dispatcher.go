// Package queue provides the in-memory FIFO dispatcher that serializes
// outbound calls into a single external subsystem. It orders calls to that
// subsystem only; it is not a general concurrency mechanism.
package queue

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Task is one outbound call. Tasks run strictly in enqueue order; a task is
// not started until its predecessor has fully returned.
type Task func(ctx context.Context) error

type Dispatcher struct {
	mu    sync.Mutex
	tasks []Task
	wake  chan struct{}
	done  chan struct{}
	wg    sync.WaitGroup
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue appends a task to the queue. It never blocks on the task itself.
func (d *Dispatcher) Enqueue(task Task) {
	d.mu.Lock()
	d.tasks = append(d.tasks, task)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Close stops the worker after draining the pending tasks.
func (d *Dispatcher) Close() {
	close(d.done)
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		task := d.next()
		if task != nil {
			d.exec(task)
			continue
		}

		select {
		case <-d.wake:
		case <-d.done:
			for task := d.next(); task != nil; task = d.next() {
				d.exec(task)
			}
			return
		}
	}
}

func (d *Dispatcher) next() Task {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.tasks) == 0 {
		return nil
	}
	task := d.tasks[0]
	d.tasks = d.tasks[1:]
	return task
}

func (d *Dispatcher) exec(task Task) {
	if err := task(context.Background()); err != nil {
		logrus.Errorf("dispatcher task failed: %v", err)
	}
}
