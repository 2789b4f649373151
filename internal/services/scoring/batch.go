package scoring

import (
	"context"
	"sync"

	"secureflow/internal/services/feature"
)

// ScoreBatch applies the single-transaction path to every item. Output
// length always equals input length and slot i corresponds to input i; one
// item's failure is recorded in its slot and never aborts the rest.
func (s *service) ScoreBatch(ctx context.Context, raws []feature.RawTransaction) []BatchItem {
	items := make([]BatchItem, len(raws))

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for i := range raws {
		wg.Add(1)
		go func(i int, raw feature.RawTransaction) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := s.ScoreTransaction(ctx, raw)
			items[i] = BatchItem{Index: i, Result: result, Err: err}
		}(i, raws[i])
	}
	wg.Wait()

	return items
}
