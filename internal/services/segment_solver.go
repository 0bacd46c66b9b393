package services

import (
	"campaign-route-service/internal/domain"
	"campaign-route-service/internal/ports"
	"context"
	"fmt"
	"math"
	"runtime"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// SolverOptions tunes the exact segment search.
type SolverOptions struct {
	// Upper bound on concurrently searched branches. Zero means runtime.NumCPU().
	Workers int
	// Refuse clusters with more interior points than this. Zero disables the check.
	MaxInterior int
}

func (o SolverOptions) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// SegmentStats describes the work done by one SolveSegment call.
type SegmentStats struct {
	Interior   int
	Candidates int64
}

// How many search nodes a branch visits between context checks.
const cancelCheckInterval = 1 << 12

// SolveSegment computes the shortest Hamiltonian path through members that
// starts at entry and, when exit is non-nil, ends at exit.
//
// Every ordering of the interior points is considered. The search runs depth
// first and drops a partial ordering as soon as it is already longer than the
// best complete ordering found; distances are non-negative so the optimum is
// never cut. The first interior position is fanned out across workers, the
// branches share the best-so-far bound, and the final choice is a sequential
// reduction in branch order so equal-length optima resolve the same way on
// every run.
//
// Preconditions are checked before any enumeration: an empty member set
// yields domain.ErrDegenerateInput, an entry or exit outside members (or an
// exit equal to entry in a multi-point cluster) yields domain.ErrInvalidAnchor.
func SolveSegment(
	ctx context.Context,
	members []domain.Point,
	entry domain.Point,
	exit *domain.Point,
	metric ports.Metric,
	opts SolverOptions,
) (domain.Segment, SegmentStats, error) {
	if metric == nil {
		return domain.Segment{}, SegmentStats{}, fmt.Errorf("solve segment: metric must be non-nil")
	}

	uniq := make([]domain.Point, 0, len(members))
	for _, p := range members {
		if domain.IndexOf(uniq, p.Name) < 0 {
			uniq = append(uniq, p)
		}
	}
	if len(uniq) == 0 {
		return domain.Segment{}, SegmentStats{}, fmt.Errorf("solve segment: %w: cluster has no members", domain.ErrDegenerateInput)
	}

	entryIdx := domain.IndexOf(uniq, entry.Name)
	if entryIdx < 0 {
		return domain.Segment{}, SegmentStats{}, fmt.Errorf("solve segment: %w: entry %q is not a member", domain.ErrInvalidAnchor, entry.Name)
	}
	start := uniq[entryIdx]

	var end *domain.Point
	if exit != nil {
		exitIdx := domain.IndexOf(uniq, exit.Name)
		if exitIdx < 0 {
			return domain.Segment{}, SegmentStats{}, fmt.Errorf("solve segment: %w: exit %q is not a member", domain.ErrInvalidAnchor, exit.Name)
		}
		if exitIdx == entryIdx && len(uniq) > 1 {
			return domain.Segment{}, SegmentStats{}, fmt.Errorf("solve segment: %w: exit %q equals entry", domain.ErrInvalidAnchor, exit.Name)
		}
		if exitIdx != entryIdx {
			p := uniq[exitIdx]
			end = &p
		}
	}

	interior := make([]domain.Point, 0, len(uniq))
	for _, p := range uniq {
		if p.Same(start) || (end != nil && p.Same(*end)) {
			continue
		}
		interior = append(interior, p)
	}

	if opts.MaxInterior > 0 && len(interior) > opts.MaxInterior {
		return domain.Segment{}, SegmentStats{}, fmt.Errorf(
			"solve segment: %w: %d interior points, limit %d",
			domain.ErrClusterTooLarge, len(interior), opts.MaxInterior,
		)
	}

	if len(interior) == 0 {
		points := []domain.Point{start}
		length := 0.0
		if end != nil {
			points = append(points, *end)
			length = metric.Distance(start, *end)
		}
		return domain.Segment{Points: points, Length: length}, SegmentStats{Candidates: 1}, nil
	}

	k := len(interior)
	bound := atomic.NewFloat64(math.Inf(1))
	evaluated := atomic.NewInt64(0)
	results := make([]branchResult, k)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for b := 0; b < k; b++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s := &branchSearch{
				ctx:       gctx,
				start:     start,
				end:       end,
				interior:  interior,
				metric:    metric,
				bound:     bound,
				evaluated: evaluated,
				used:      make([]bool, k),
				order:     make([]int, 0, k),
				best:      math.Inf(1),
			}
			results[b] = s.run(b)
			return s.err
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Segment{}, SegmentStats{}, fmt.Errorf("solve segment: %w", err)
	}

	winner := -1
	for b, r := range results {
		if !r.found {
			continue
		}
		if winner < 0 || r.length < results[winner].length {
			winner = b
		}
	}
	if winner < 0 {
		// Unreachable with a non-negative metric: the bound only ever holds a
		// length some branch actually reached.
		return domain.Segment{}, SegmentStats{}, fmt.Errorf("solve segment: no candidate ordering found for %d interior points", k)
	}

	best := results[winner]
	points := make([]domain.Point, 0, k+2)
	points = append(points, start)
	for _, idx := range best.order {
		points = append(points, interior[idx])
	}
	if end != nil {
		points = append(points, *end)
	}

	return domain.Segment{Points: points, Length: best.length},
		SegmentStats{Interior: k, Candidates: evaluated.Load()},
		nil
}

// PathLength returns the summed distance over consecutive points.
func PathLength(points []domain.Point, metric ports.Metric) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += metric.Distance(points[i-1], points[i])
	}
	return total
}

type branchResult struct {
	found  bool
	length float64
	order  []int
}

// branchSearch enumerates every ordering of interior whose first element is fixed.
type branchSearch struct {
	ctx       context.Context
	start     domain.Point
	end       *domain.Point
	interior  []domain.Point
	metric    ports.Metric
	bound     *atomic.Float64
	evaluated *atomic.Int64

	used  []bool
	order []int

	best      float64
	bestOrder []int
	nodes     int
	err       error
}

func (s *branchSearch) run(first int) branchResult {
	s.used[first] = true
	s.order = append(s.order, first)
	s.walk(s.interior[first], s.metric.Distance(s.start, s.interior[first]))

	if s.bestOrder == nil {
		return branchResult{}
	}
	return branchResult{found: true, length: s.best, order: s.bestOrder}
}

func (s *branchSearch) walk(last domain.Point, partial float64) {
	if s.err != nil {
		return
	}
	s.nodes++
	if s.nodes%cancelCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return
		}
	}
	// Strict comparison keeps every ordering that can still tie the optimum.
	if partial > s.bound.Load() {
		return
	}

	if len(s.order) == len(s.interior) {
		s.leaf(last, partial)
		return
	}

	for i, p := range s.interior {
		if s.used[i] {
			continue
		}
		s.used[i] = true
		s.order = append(s.order, i)
		s.walk(p, partial+s.metric.Distance(last, p))
		s.order = s.order[:len(s.order)-1]
		s.used[i] = false
		if s.err != nil {
			return
		}
	}
}

func (s *branchSearch) leaf(last domain.Point, partial float64) {
	total := partial
	if s.end != nil {
		total += s.metric.Distance(last, *s.end)
	}

	s.evaluated.Inc()

	if total < s.best {
		s.best = total
		s.bestOrder = append(s.bestOrder[:0], s.order...)
	}

	for {
		cur := s.bound.Load()
		if total >= cur || s.bound.CompareAndSwap(cur, total) {
			return
		}
	}
}
