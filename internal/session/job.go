// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"fmt"
	"sync"

	"github.com/pdiddy/schemconvert/pkg/types"
)

// State is the lifecycle stage of a Job.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateRejected
	StateDiscovering
	StateRejectedEmpty
	StateDispatched
	StateRunning
	StateCompleted
)

var stateNames = [...]string{
	"idle", "validating", "rejected", "discovering",
	"rejected-empty", "dispatched", "running", "completed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == StateRejected || s == StateRejectedEmpty || s == StateCompleted
}

// Job tracks one bulk conversion request from validation to its summary.
type Job struct {
	id   string
	done chan struct{}

	mu      sync.Mutex
	state   State
	err     error
	files   int
	summary types.BatchSummary
}

func newJob(id string) *Job {
	return &Job{id: id, done: make(chan struct{}), state: StateIdle}
}

// ID returns the job's correlation ID.
func (j *Job) ID() string { return j.id }

// State returns the current stage.
func (j *Job) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// Err returns why the job was rejected, or nil.
func (j *Job) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// Files returns how many files were dispatched.
func (j *Job) Files() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.files
}

// Done is closed once the job is rejected or completed.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the job finishes and returns its summary. A rejected
// job has a zero summary.
func (j *Job) Wait() types.BatchSummary {
	<-j.done
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.summary
}

func (j *Job) set(s State) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state = s
}

func (j *Job) reject(s State, err error) *Job {
	j.mu.Lock()
	j.state = s
	j.err = err
	j.mu.Unlock()
	close(j.done)
	return j
}

func (j *Job) complete(summary types.BatchSummary) {
	j.mu.Lock()
	j.state = StateCompleted
	j.summary = summary
	j.mu.Unlock()
	close(j.done)
}
