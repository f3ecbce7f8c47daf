package common

import (
	"context"

	"atsscore/internal/errors"
	"atsscore/internal/types"

	"golang.org/x/sync/errgroup"
)

// FileOperation turns one input file into a result
type FileOperation[T any] func(ctx context.Context, path string) (T, error)

// ProcessFiles runs op over paths with at most concurrency in flight.
// Results keep the order of paths; per-file failures are collected rather
// than aborting the batch. Only context cancellation is returned as an error.
func ProcessFiles[T any](
	ctx context.Context,
	logger *errors.Logger,
	paths []string,
	concurrency int,
	op FileOperation[T],
) ([]T, []types.BatchFailure, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]T, len(paths))
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], errs[i] = op(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	ok := make([]T, 0, len(paths))
	var failed []types.BatchFailure
	for i, path := range paths {
		if errs[i] != nil {
			if logger != nil {
				logger.LogError(errs[i], "Failed to process file", "file", path)
			}
			failed = append(failed, types.BatchFailure{Source: path, Error: errs[i].Error()})
			continue
		}
		ok = append(ok, results[i])
	}
	return ok, failed, nil
}
