package domain

import (
	"errors"
	"fmt"
)

var (
	// A mandated entry or exit point is not a member of the cluster being solved.
	ErrInvalidAnchor = errors.New("invalid anchor")
	// An empty cluster (or an empty cluster list) was asked to be solved.
	ErrDegenerateInput = errors.New("degenerate input")
	// No hand-off anchor is available for a cluster after the first.
	ErrBrokenChain = errors.New("broken chain")
	// Matched by every *SegmentFailedError.
	ErrSegmentFailed = errors.New("segment failed")
	// The cluster has more interior points than the solver is configured to enumerate.
	ErrClusterTooLarge = errors.New("cluster too large")
	// A point referenced by name is not in the loaded point set.
	ErrUnknownPoint = errors.New("unknown point")
)

// SegmentFailedError tags a per-cluster failure with the cluster's position
// in the traversal order.
type SegmentFailedError struct {
	Index int
	Label int
	Err   error
}

func (e *SegmentFailedError) Error() string {
	return fmt.Sprintf("segment failed: cluster index %d (label %d): %v", e.Index, e.Label, e.Err)
}

func (e *SegmentFailedError) Unwrap() error { return e.Err }

func (e *SegmentFailedError) Is(target error) bool { return target == ErrSegmentFailed }
