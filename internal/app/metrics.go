package app

import (
	"fmt"

	"github.com/treykane/listings/internal/listings"
)

// listingMetricsSummary describes the visible listings for the footer, e.g.
// "3 listings · $1,935,000 · 2 active".
func (m *Model) listingMetricsSummary() string {
	if m.activeTab().report || len(m.visible) == 0 {
		return ""
	}
	report := listings.BuildReport(m.visible)
	noun := "listings"
	if report.Total == 1 {
		noun = "listing"
	}
	summary := fmt.Sprintf("%d %s · %s", report.Total, noun, listings.FormatPrice(report.Value))
	for _, c := range report.ByStatus {
		if c.Label == string(listings.StatusActive) && c.Count > 0 {
			summary += fmt.Sprintf(" · %d active", c.Count)
		}
	}
	return summary
}
