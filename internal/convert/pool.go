// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/schemconvert/pkg/types"
)

// convertParallel converts up to c.workers files at once. Each file owns a
// one-slot channel; the emitter reads the slots in input order, so outcomes
// leave in the same order as the sequential path.
func (c *Converter) convertParallel(ctx context.Context, job types.ConversionJob, out chan<- types.ConversionOutcome) {
	defer close(out)

	slots := make([]chan types.ConversionOutcome, len(job.InputFiles))
	for i := range slots {
		slots[i] = make(chan types.ConversionOutcome, 1)
	}

	var g errgroup.Group
	g.SetLimit(c.workers)
	go func() {
		for i, f := range job.InputFiles {
			g.Go(func() error {
				slots[i] <- c.ConvertFile(ctx, job, f)
				return nil
			})
		}
		_ = g.Wait()
	}()

	for _, slot := range slots {
		out <- <-slot
	}
}
