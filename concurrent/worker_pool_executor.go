/**
 * Copyright (c) 2019, The Relay Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package concurrent

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// WorkerPoolExecutorConfig contains options to configure a WorkerPoolExecutor.
type WorkerPoolExecutorConfig struct {
	// PoolSize specifies the number of worker goroutines. Required.
	PoolSize int

	// QueueSize specifies the capacity of the pending task queue. 0 makes Submit hand tasks to
	// workers directly (an unbuffered queue).
	QueueSize int
}

// Validate verifies config values.
func (config *WorkerPoolExecutorConfig) Validate() error {
	if config.PoolSize <= 0 {
		return errors.New("concurrent: pool size must be a positive number")
	}
	if config.QueueSize < 0 {
		return errors.New("concurrent: queue size must not be a negative number")
	}
	return nil
}

// Execution states of a workerPoolTask. Transitions are made with CAS so Cancel and the worker
// that picks up the task never race: exactly one of them moves the task out of the pending state.
const (
	taskStatePending int32 = iota
	taskStateRunning
	taskStateCompleted
	taskStateCancelled
)

// ErrTaskNotCancellable is returned from Cancel for a task that has started running.
var ErrTaskNotCancellable = errors.New("task has started and cannot be cancelled")

// workerPoolTask implements TaskHandle for a Task executed in a WorkerPoolExecutor.
type workerPoolTask struct {
	task Task

	// One of the taskState values above; accessed atomically.
	state int32

	// Closed when the task reaches a terminal state. result and err must not be read before the
	// channel is closed.
	done chan struct{}

	result interface{}
	err    error
}

var _ TaskHandle = (*workerPoolTask)(nil)

func newWorkerPoolTask(task Task) *workerPoolTask {
	return &workerPoolTask{
		task: task,
		done: make(chan struct{}),
	}
}

// Cancel implements TaskHandle.
func (task *workerPoolTask) Cancel() error {
	if atomic.CompareAndSwapInt32(&task.state, taskStatePending, taskStateCancelled) {
		close(task.done)
		return nil
	}
	return ErrTaskNotCancellable
}

// AwaitResult implements TaskHandle.
func (task *workerPoolTask) AwaitResult(timeout time.Duration) (interface{}, error) {
	if timeout > 0 {
		select {
		case <-task.done:
		case <-time.After(timeout):
			return nil, ErrAwaitTaskResultTimeout
		}
	} else {
		<-task.done
	}

	if atomic.LoadInt32(&task.state) == taskStateCancelled {
		return nil, ErrTaskCancelled
	}
	return task.result, task.err
}

// run executes the task on the calling worker goroutine. It is a no-op for a cancelled task.
func (task *workerPoolTask) run() {
	if !atomic.CompareAndSwapInt32(&task.state, taskStatePending, taskStateRunning) {
		// Cancelled before a worker picked it up.
		return
	}
	task.result, task.err = task.task.Run()
	atomic.StoreInt32(&task.state, taskStateCompleted)
	close(task.done)
}

// WorkerPoolExecutor is an Executor that executes submitted tasks on a fixed-size pool of worker
// goroutines. Workers are started eagerly by NewWorkerPoolExecutor and exit when Shutdown drains
// the queue.
type WorkerPoolExecutor struct {
	// Guards shutdown against concurrent Submit; Submit sends to queue while holding the read
	// side so the queue is never closed mid-send.
	mutex sync.RWMutex

	shutdown bool
	queue    chan *workerPoolTask

	// Worker bookkeeping for the terminated notification.
	workers    sync.WaitGroup
	terminated chan bool
}

var _ Executor = (*WorkerPoolExecutor)(nil)

// NewWorkerPoolExecutor creates a WorkerPoolExecutor from given config and starts its workers.
func NewWorkerPoolExecutor(config WorkerPoolExecutorConfig) (*WorkerPoolExecutor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	executor := &WorkerPoolExecutor{
		queue:      make(chan *workerPoolTask, config.QueueSize),
		terminated: make(chan bool, 1),
	}

	executor.workers.Add(config.PoolSize)
	for i := 0; i < config.PoolSize; i++ {
		go executor.worker()
	}

	return executor, nil
}

func (executor *WorkerPoolExecutor) worker() {
	defer executor.workers.Done()
	for task := range executor.queue {
		task.run()
	}
}

// Submit implements Executor.
func (executor *WorkerPoolExecutor) Submit(task Task) (TaskHandle, error) {
	executor.mutex.RLock()
	defer executor.mutex.RUnlock()

	if executor.shutdown {
		return nil, ErrExecutorShutdown
	}

	handle := newWorkerPoolTask(task)
	executor.queue <- handle
	return handle, nil
}

// Shutdown implements Executor.
func (executor *WorkerPoolExecutor) Shutdown() (<-chan bool, error) {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()

	if !executor.shutdown {
		executor.shutdown = true
		close(executor.queue)
		go func() {
			executor.workers.Wait()
			executor.terminated <- true
		}()
	}

	return executor.terminated, nil
}
