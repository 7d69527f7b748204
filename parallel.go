package relief

import "github.com/ajroetker/go-highway/hwy/contrib/workerpool"

// Every per-cell computation in the pipeline is independent across rows, so
// the stages fan out over a shared persistent pool. Each ParallelFor call
// writes disjoint rows of its own output buffer; the barrier inside
// ParallelFor is the only synchronization needed.
var rowPool = workerpool.New(0)

func parallelRows(rows int, fn func(start, end int)) {
	rowPool.ParallelFor(rows, fn)
}
