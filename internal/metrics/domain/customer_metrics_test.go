package domain

import (
	"testing"
	"time"

	customersdomain "segmetrics/internal/customers/domain"
	"segmetrics/internal/shared/domain"
)

func score(t *testing.T, sum, count int) domain.ReviewScore {
	t.Helper()
	s, err := domain.NewReviewScore(sum, count)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewCustomerMetrics(t *testing.T) {
	first := time.Date(2017, time.January, 15, 10, 0, 0, 0, time.UTC)
	last := time.Date(2017, time.June, 15, 10, 0, 0, 0, time.UTC)

	cm, err := NewCustomerMetrics(
		customersdomain.CustomerID("c1"),
		6,
		money(t, 1200),
		first,
		last,
		score(t, 14, 3),
	)
	if err != nil {
		t.Fatal(err)
	}

	if cm.AvgOrderValue().Cents() != 20_000 {
		t.Errorf("avg order value = %d cents, want 20000", cm.AvgOrderValue().Cents())
	}
	if cm.LifespanDays() != 151 {
		t.Errorf("lifespan = %d days, want 151", cm.LifespanDays())
	}
	if cm.Segment() != SegmentHighValueLoyal {
		t.Errorf("segment = %q", cm.Segment())
	}
	if cm.Satisfaction() != SatisfactionVerySatisfied {
		t.Errorf("satisfaction = %q", cm.Satisfaction())
	}
}

func TestNewCustomerMetrics_Validation(t *testing.T) {
	now := time.Date(2017, time.March, 1, 0, 0, 0, 0, time.UTC)
	earlier := now.AddDate(0, -1, 0)

	tests := []struct {
		name        string
		customerID  customersdomain.CustomerID
		totalOrders int
		first, last time.Time
	}{
		{"identifiant vide", "", 1, now, now},
		{"zéro commande", "c1", 0, now, now},
		{"commandes négatives", "c1", -3, now, now},
		{"dates inversées", "c1", 1, now, earlier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCustomerMetrics(tt.customerID, tt.totalOrders, money(t, 100), tt.first, tt.last, score(t, 0, 0))
			if err == nil {
				t.Error("expected an error")
			}
		})
	}
}

// TestNewCustomerMetrics_SingleOrder une seule commande: durée de vie nulle
func TestNewCustomerMetrics_SingleOrder(t *testing.T) {
	day := time.Date(2017, time.March, 1, 14, 30, 0, 0, time.UTC)

	cm, err := NewCustomerMetrics(customersdomain.CustomerID("c1"), 1, money(t, 75), day, day, score(t, 0, 0))
	if err != nil {
		t.Fatal(err)
	}

	if cm.LifespanDays() != 0 {
		t.Errorf("lifespan = %d days, want 0", cm.LifespanDays())
	}
	if cm.TotalSpent().Cents() != cm.AvgOrderValue().Cents() {
		t.Error("single order: avg should equal total")
	}
	if cm.Satisfaction() != SatisfactionUnknown {
		t.Errorf("satisfaction = %q, want %q", cm.Satisfaction(), SatisfactionUnknown)
	}
}

func TestDiscrepancyReport(t *testing.T) {
	var clean DiscrepancyReport
	if !clean.IsClean() || clean.Total() != 0 {
		t.Error("zero report should be clean")
	}

	a := DiscrepancyReport{OrphanOrders: 1, OrphanItems: 2}
	b := DiscrepancyReport{OrphanItems: 1, OrphanReviews: 4}

	merged := a.Merge(b)
	want := DiscrepancyReport{OrphanOrders: 1, OrphanItems: 3, OrphanReviews: 4}
	if merged != want {
		t.Errorf("merged = %+v, want %+v", merged, want)
	}
	if merged.Total() != 8 {
		t.Errorf("total = %d, want 8", merged.Total())
	}
	if merged.IsClean() {
		t.Error("non-empty report should not be clean")
	}
}
