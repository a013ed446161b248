package workload

import (
	"fmt"
	"sort"
)

// ConvertLegacy maps one legacy tick/bucket record to a canonical Request.
// The arrival time within tick i, bucket j of k buckets is
//
//	i + (j+1)*0.5/k
//
// which places every bucket's arrival strictly inside (i, i+1): the first
// bucket lands at i+0.5/k and the last at i+0.5, leaving the second half of
// the tick free and guaranteeing bucket order never collides with the next
// tick's first arrival (§6).
func ConvertLegacy(lr LegacyRequest) (Request, error) {
	if lr.BucketsPerTick <= 0 {
		return Request{}, ErrBadBucketCount
	}
	if lr.Bucket < 0 || lr.Bucket >= lr.BucketsPerTick {
		return Request{}, fmt.Errorf("%w: bucket %d, buckets_per_tick %d", ErrBucketOutOfRange, lr.Bucket, lr.BucketsPerTick)
	}

	arrival := float64(lr.Tick) + float64(lr.Bucket+1)*0.5/float64(lr.BucketsPerTick)

	return Request{
		ArrivalTime: arrival,
		Switch:      lr.Switch,
		Size:        lr.Size,
		Duration:    lr.Duration,
	}, nil
}

// ConvertBatch converts every record in legacy, then stably sorts the
// result by ArrivalTime — a no-op for a trace already emitted in
// tick/bucket order, but a safety net for traces that are not (§6 invariant:
// "request count preservation", "strictly increasing within-tick
// ordering").
func ConvertBatch(legacy []LegacyRequest) ([]Request, error) {
	out := make([]Request, len(legacy))
	for i, lr := range legacy {
		r, err := ConvertLegacy(lr)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out[i] = r
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ArrivalTime < out[j].ArrivalTime })

	return out, nil
}
