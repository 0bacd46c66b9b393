package domain

// Represents a fixed-membership group of points produced by the partitioner.
// Solvers copy Members before adding hand-off anchors; a Cluster is never
// mutated once it has been handed to the chain.
type Cluster struct {
	Label   int
	Members []Point
}

// Contains reports whether a point with the given name belongs to the cluster.
func (c Cluster) Contains(name string) bool {
	return IndexOf(c.Members, name) >= 0
}

// Return a fresh membership slice with the extra points appended when absent.
func (c Cluster) With(extra ...Point) []Point {
	out := make([]Point, 0, len(c.Members)+len(extra))
	out = append(out, c.Members...)
	for _, p := range extra {
		if p.IsZero() || IndexOf(out, p.Name) >= 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}
