package convert

import (
	"context"
	"sync"
)

// forEachFile fans files out to a bounded set of workers. Each file is
// processed exactly once; a canceled context drains the remaining files
// without handing them to fn.
func forEachFile(ctx context.Context, workers int, files []string, fn func(context.Context, string)) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	work := make(chan string)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for path := range work {
				if ctx.Err() != nil {
					continue
				}
				fn(ctx, path)
			}
		}()
	}

	for _, path := range files {
		work <- path
	}
	close(work)
	wg.Wait()
}
