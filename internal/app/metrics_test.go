package app

import "testing"

func TestListingMetricsSummary(t *testing.T) {
	m := &Model{visible: testListings()[:3]}
	want := "3 listings · $2,333,000 · 2 active"
	if got := m.listingMetricsSummary(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestListingMetricsSummaryEmpty(t *testing.T) {
	m := &Model{}
	if got := m.listingMetricsSummary(); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
}

func TestListingMetricsSummaryHiddenOnReports(t *testing.T) {
	m := &Model{visible: testListings(), tab: len(navTabs) - 1}
	if got := m.listingMetricsSummary(); got != "" {
		t.Fatalf("expected no summary on the reports tab, got %q", got)
	}
}
