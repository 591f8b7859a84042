package concurrent

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/skyforge/skyforge/pkg/sequence"
)

// Concurrent runs the action for each element of the iterator in its own
// goroutine and waits for all of them. The first error encountered is
// returned.
func Concurrent[T any](i *sequence.Iterator[T], action func(T) error) error {
	var group errgroup.Group
	next, stop := i.Pull()
	defer stop()

	for {
		value, valid := next()
		if !valid {
			break
		}
		group.Go(func() error {
			return action(value)
		})
	}

	return group.Wait()
}

// ParallelMust runs the action for each element in its own goroutine and
// waits for all of them; the action cannot fail.
func ParallelMust[T any](i *sequence.Iterator[T], action func(T)) {
	var wg sync.WaitGroup
	next, stop := i.Pull()
	defer stop()

	for {
		value, valid := next()
		if !valid {
			break
		}
		wg.Add(1)
		go func(v T) {
			defer wg.Done()
			action(v)
		}(value)
	}

	wg.Wait()
}
