package services

import (
	"campaign-route-service/internal/domain"
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// KMeansPartitioner implements ports.Partitioner with Lloyd's algorithm on
// (longitude, latitude) vectors and k-means++ seeding.
//
// Runs are seeded from Seed so the same input always yields the same
// clusters. The run with the lowest inertia out of NInit is kept.
type KMeansPartitioner struct {
	NInit   int
	MaxIter int
	Seed    uint64
}

func NewKMeansPartitioner() *KMeansPartitioner {
	return &KMeansPartitioner{NInit: 5, MaxIter: 300, Seed: 42}
}

type kmeansRun struct {
	assign  []int
	inertia float64
}

// Partition splits points into k non-empty clusters labelled 0..k-1.
// Members within a cluster are ordered by name.
func (km *KMeansPartitioner) Partition(ctx context.Context, points []domain.Point, k int) ([]domain.Cluster, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("partition: %w: no points", domain.ErrDegenerateInput)
	}
	if k <= 0 || k > len(points) {
		return nil, fmt.Errorf("partition: k=%d must be between 1 and %d", k, len(points))
	}

	nInit := km.NInit
	if nInit <= 0 {
		nInit = 1
	}
	maxIter := km.MaxIter
	if maxIter <= 0 {
		maxIter = 300
	}

	vecs := make([][]float64, len(points))
	for i, p := range points {
		vecs[i] = p.LonLat()
	}

	var best *kmeansRun
	for run := 0; run < nInit; run++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("partition: %w", err)
		}

		rng := rand.New(rand.NewPCG(km.Seed, uint64(run)))
		r := lloyd(vecs, seedPlusPlus(vecs, k, rng), maxIter)
		if best == nil || r.inertia < best.inertia {
			best = &r
		}
	}

	clusters := make([]domain.Cluster, k)
	for label := range clusters {
		clusters[label].Label = label
	}
	for i, label := range best.assign {
		clusters[label].Members = append(clusters[label].Members, points[i])
	}
	for _, c := range clusters {
		if len(c.Members) == 0 {
			return nil, fmt.Errorf("partition: cluster %d is empty", c.Label)
		}
		slices.SortFunc(c.Members, func(a, b domain.Point) int { return strings.Compare(a.Name, b.Name) })
	}

	return clusters, nil
}

// seedPlusPlus picks k initial centers, each new one with probability
// proportional to its squared distance from the nearest existing center.
func seedPlusPlus(vecs [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	centers = append(centers, slices.Clone(vecs[rng.IntN(len(vecs))]))

	d2 := make([]float64, len(vecs))
	for len(centers) < k {
		sum := 0.0
		for i, v := range vecs {
			d := floats.Distance(v, centers[len(centers)-1], 2)
			if len(centers) == 1 || d*d < d2[i] {
				d2[i] = d * d
			}
			sum += d2[i]
		}

		next := len(vecs) - 1
		if sum > 0 {
			target := rng.Float64() * sum
			for i, w := range d2 {
				target -= w
				if target < 0 {
					next = i
					break
				}
			}
		} else {
			// Every point sits on a center already; any point will do.
			next = rng.IntN(len(vecs))
		}
		centers = append(centers, slices.Clone(vecs[next]))
	}
	return centers
}

func lloyd(vecs [][]float64, centers [][]float64, maxIter int) kmeansRun {
	k := len(centers)
	assign := make([]int, len(vecs))
	for i := range assign {
		assign[i] = -1
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, v := range vecs {
			c := nearestCenter(v, centers)
			if c != assign[i] {
				assign[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, len(vecs[0]))
		}
		for i, v := range vecs {
			floats.Add(sums[assign[i]], v)
			counts[assign[i]]++
		}

		for c := range centers {
			if counts[c] == 0 {
				// Re-seed an empty cluster on the point worst served by its center.
				far := farthestPoint(vecs, assign, centers)
				centers[c] = slices.Clone(vecs[far])
				assign[far] = c
				continue
			}
			floats.Scale(1/float64(counts[c]), sums[c])
			centers[c] = sums[c]
		}
	}

	// A re-seed on the last iteration can leave a stale assignment; settle it.
	for i, v := range vecs {
		assign[i] = nearestCenter(v, centers)
	}
	ensureNonEmpty(vecs, assign, centers)

	inertia := 0.0
	for i, v := range vecs {
		d := floats.Distance(v, centers[assign[i]], 2)
		inertia += d * d
	}
	return kmeansRun{assign: assign, inertia: inertia}
}

// ensureNonEmpty moves the worst-served point into any cluster left empty.
// The moved point is never the last member of its own cluster.
func ensureNonEmpty(vecs [][]float64, assign []int, centers [][]float64) {
	counts := make([]int, len(centers))
	for _, c := range assign {
		counts[c]++
	}
	for c := range centers {
		if counts[c] > 0 {
			continue
		}
		far, farD := -1, -1.0
		for i, v := range vecs {
			if counts[assign[i]] < 2 {
				continue
			}
			if d := floats.Distance(v, centers[assign[i]], 2); d > farD {
				far, farD = i, d
			}
		}
		if far < 0 {
			return
		}
		counts[assign[far]]--
		assign[far] = c
		counts[c]++
		centers[c] = slices.Clone(vecs[far])
	}
}

func nearestCenter(v []float64, centers [][]float64) int {
	best, bestD := 0, math.Inf(1)
	for c, center := range centers {
		if d := floats.Distance(v, center, 2); d < bestD {
			best, bestD = c, d
		}
	}
	return best
}

func farthestPoint(vecs [][]float64, assign []int, centers [][]float64) int {
	far, farD := 0, -1.0
	for i, v := range vecs {
		if assign[i] < 0 {
			return i
		}
		if d := floats.Distance(v, centers[assign[i]], 2); d > farD {
			far, farD = i, d
		}
	}
	return far
}
