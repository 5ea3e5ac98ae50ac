package translate

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

const DefaultBatchSize = 50

type sendFunc func(ctx context.Context, items []TranslationItem) ([]TranslationResult, error)

// splits items into request-sized batches and fans them out to a provider.
// Embedded by every provider so batching behaves the same everywhere.
type batcher struct {
	size int
	send sendFunc
}

func newBatcher(size int, send sendFunc) batcher {
	if size <= 0 {
		size = DefaultBatchSize
	}
	return batcher{size: size, send: send}
}

func (b batcher) split(items []TranslationItem) [][]TranslationItem {
	var batches [][]TranslationItem
	for i := 0; i < len(items); i += b.size {
		end := i + b.size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end])
	}
	return batches
}

// translates batches one after another
func (b batcher) Translate(
	ctx context.Context,
	items []TranslationItem,
) ([]TranslationResult, error) {
	return b.TranslateWithConcurrency(ctx, items, 1)
}

// Items are split into batches of BatchSize (default 50). Each batch becomes
// one API request, at most concurrency requests run at once. The first
// failure cancels the remaining batches.
func (b batcher) TranslateWithConcurrency(
	ctx context.Context,
	items []TranslationItem,
	concurrency int,
) ([]TranslationResult, error) {
	if len(items) == 0 {
		return []TranslationResult{}, nil
	}

	if concurrency <= 0 {
		concurrency = 3
	}

	batches := b.split(items)
	if len(batches) == 1 {
		return b.send(ctx, batches[0])
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)
	results := make([][]TranslationResult, len(batches))
	sem := make(chan struct{}, concurrency)

	for i, batch := range batches {
		wg.Add(1)
		go func(idx int, batch []TranslationItem) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			out, err := b.send(ctx, batch)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("batch %d failed: %w", idx, err)
					cancel()
				}
				return
			}
			results[idx] = out
		}(i, batch)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []TranslationResult
	for _, r := range results {
		all = append(all, r...)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Index < all[j].Index
	})

	return all, nil
}
