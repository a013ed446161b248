package workload

import "errors"

// Sentinel errors for legacy-bucket conversion.
var (
	// ErrBadBucketCount indicates a non-positive buckets-per-tick was supplied.
	ErrBadBucketCount = errors.New("workload: buckets per tick must be positive")

	// ErrBucketOutOfRange indicates a bucket index outside [0, bucketsPerTick).
	ErrBucketOutOfRange = errors.New("workload: bucket index out of range")
)

// Request is one canonical arrival: a flow of Size arriving at Switch at
// ArrivalTime and occupying its path for Duration (§3).
type Request struct {
	ArrivalTime float64
	Switch      string
	Size        float64
	Duration    float64
}

// LegacyRequest is a request as recorded in the tick/bucket scheme older
// traces use: Tick identifies the discrete simulation tick and Bucket
// identifies the sub-tick slot among BucketsPerTick evenly spaced slots
// (§6, "legacy bucket format").
type LegacyRequest struct {
	Tick           int
	Bucket         int
	BucketsPerTick int
	Switch         string
	Size           float64
	Duration       float64
}
