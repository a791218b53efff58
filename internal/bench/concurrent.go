// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package bench is test-only harness plumbing (never imported by library
// code): it exercises the concurrency model spec §5 describes ("distinct
// contexts on distinct threads are independent") by running many
// independent driver instances in parallel and collecting the first
// failure. Grounded on idelchi/gonc's encryption.go, which fans concurrent
// work out across goroutines via golang.org/x/sync/errgroup rather than a
// hand-rolled WaitGroup/channel pair.
package bench

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// VerifyConcurrent runs work(0), work(1), ..., work(n-1) concurrently and
// returns the first non-nil error encountered (errgroup cancels the
// group's context on first error, but work functions here are not
// expected to observe cancellation — they are bounded, CPU-only driver
// calls).
func VerifyConcurrent(n int, work func(i int) error) error {
	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return work(i) })
	}
	return g.Wait()
}
