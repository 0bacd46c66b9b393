// Package report renders a solved itinerary as plain text.
package report

import (
	"campaign-route-service/internal/domain"
	"fmt"
	"io"
	"strings"
)

// WriteText prints a summary line followed by one line per segment in
// traversal order. Segments are numbered from 1.
func WriteText(w io.Writer, it *domain.Itinerary) error {
	if it == nil {
		return fmt.Errorf("write report: itinerary is nil")
	}

	if _, err := fmt.Fprintf(w,
		"The route will travel a total of %.2f miles to visit every point while traveling from %s to %s.\n",
		it.Total, it.Start.Name, it.End.Name,
	); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	for i, seg := range it.Segments {
		names := make([]string, len(seg.Points))
		for j, p := range seg.Points {
			names[j] = p.Name
		}
		if _, err := fmt.Fprintf(w, "Cluster %d [%s]  (%.2f miles)\n", i+1, strings.Join(names, ", "), seg.Length); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}
