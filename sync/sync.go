/*
Package sync implements a thread-safe wrapper for sharing a single
pseudorandom source across goroutines.
*/
package sync

import (
	"sync"

	"github.com/arcanedice/dice"
)

// LockerSource is implemented by any value that is both a dice.Source and a
// sync.Locker.
type LockerSource interface {
	dice.Source
	sync.Locker
}

// Evaluator wraps a dice.Source with a sync.Mutex. A Source is not
// implicitly safe to share across concurrent evaluations; Evaluator is the
// reusable way to let a pool of goroutines share one PRNG stream, each
// running its own independent evaluation against its own AST.
type Evaluator struct {
	mu  sync.Mutex
	src dice.Source
}

// Wrap creates an Evaluator out of a Source by guarding it with a mutex.
func Wrap(src dice.Source) *Evaluator {
	return &Evaluator{src: src}
}

// Intn implements dice.Source. Each call locks independently, so concurrent
// Evaluate calls interleave at individual draws rather than serializing
// whole evaluations.
func (e *Evaluator) Intn(max int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.src.Intn(max)
}

// Evaluate parses and evaluates input, drawing every face from the
// Evaluator's shared, mutex-guarded source.
func (e *Evaluator) Evaluate(input string) (*dice.Handle, error) {
	return dice.EvaluateWithSource(input, e)
}

// Lock locks the Evaluator's mutex directly. It is the same mutex Intn
// takes, so calling Intn or Evaluate while holding it blocks forever.
func (e *Evaluator) Lock() {
	e.mu.Lock()
}

// Unlock unlocks the Evaluator's mutex directly.
func (e *Evaluator) Unlock() {
	e.mu.Unlock()
}
