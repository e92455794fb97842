package application

import (
	"math/rand"
	"testing"
	"time"

	customersdomain "segmetrics/internal/customers/domain"
	"segmetrics/internal/metrics/domain"
	ordersdomain "segmetrics/internal/orders/domain"
	shareddomain "segmetrics/internal/shared/domain"
	sharedinfra "segmetrics/internal/shared/infrastructure"
)

func mustCustomer(tb testing.TB, id string) *customersdomain.Customer {
	tb.Helper()
	c, err := customersdomain.NewCustomer(customersdomain.CustomerID(id), "sao paulo", "SP")
	if err != nil {
		tb.Fatal(err)
	}
	return c
}

func mustOrder(tb testing.TB, id, customerID string, purchasedAt time.Time) *ordersdomain.Order {
	tb.Helper()
	o, err := ordersdomain.NewOrder(
		ordersdomain.OrderID(id),
		customersdomain.CustomerID(customerID),
		ordersdomain.OrderStatusDelivered,
		purchasedAt,
	)
	if err != nil {
		tb.Fatal(err)
	}
	return o
}

func mustItem(tb testing.TB, orderID string, price, freight float64) *ordersdomain.OrderItem {
	tb.Helper()
	p, err := shareddomain.NewMoney(price, domain.Currency)
	if err != nil {
		tb.Fatal(err)
	}
	f, err := shareddomain.NewMoney(freight, domain.Currency)
	if err != nil {
		tb.Fatal(err)
	}
	item, err := ordersdomain.NewOrderItem(ordersdomain.OrderID(orderID), p, f)
	if err != nil {
		tb.Fatal(err)
	}
	return item
}

func mustReview(tb testing.TB, orderID string, score int) *ordersdomain.Review {
	tb.Helper()
	r, err := ordersdomain.NewReview(ordersdomain.OrderID(orderID), score)
	if err != nil {
		tb.Fatal(err)
	}
	return r
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 10, 0, 0, 0, time.UTC)
}

// buildFixtureSnapshot construit un snapshot de référence:
//   - c1: 6 commandes de 200.00 chacune (1200.00 au total), avis [5,4,5]
//   - c2: 1 commande de 50.00 sur deux articles, aucun avis
//   - c3: 1 commande sans article (absent de la sortie)
//   - c4: aucune commande (absent de la sortie)
//   - une commande orpheline avec article et avis, plus un article orphelin
func buildFixtureSnapshot(tb testing.TB) *domain.Snapshot {
	tb.Helper()

	customers := []*customersdomain.Customer{
		mustCustomer(tb, "c1"),
		mustCustomer(tb, "c2"),
		mustCustomer(tb, "c3"),
		mustCustomer(tb, "c4"),
	}

	orders := []*ordersdomain.Order{
		mustOrder(tb, "o1", "c1", day(2017, time.January, 15)),
		mustOrder(tb, "o2", "c1", day(2017, time.February, 15)),
		mustOrder(tb, "o3", "c1", day(2017, time.March, 15)),
		mustOrder(tb, "o4", "c1", day(2017, time.April, 15)),
		mustOrder(tb, "o5", "c1", day(2017, time.May, 15)),
		mustOrder(tb, "o6", "c1", day(2017, time.June, 15)),
		mustOrder(tb, "o7", "c2", day(2017, time.March, 1)),
		mustOrder(tb, "o8", "c3", day(2017, time.March, 2)),
		mustOrder(tb, "ox", "ghost", day(2017, time.March, 3)),
	}

	items := []*ordersdomain.OrderItem{
		mustItem(tb, "o1", 180, 20),
		mustItem(tb, "o2", 180, 20),
		mustItem(tb, "o3", 180, 20),
		mustItem(tb, "o4", 180, 20),
		mustItem(tb, "o5", 180, 20),
		mustItem(tb, "o6", 180, 20),
		mustItem(tb, "o7", 30, 10),
		mustItem(tb, "o7", 5, 5),
		mustItem(tb, "ox", 99, 1),
		mustItem(tb, "oz", 10, 2),
	}

	reviews := []*ordersdomain.Review{
		mustReview(tb, "o1", 5),
		mustReview(tb, "o2", 4),
		mustReview(tb, "o3", 5),
		mustReview(tb, "ox", 1),
	}

	return domain.NewSnapshot(customers, orders, items, reviews)
}

func TestAggregationServiceV1_Fixture(t *testing.T) {
	service := NewAggregationServiceV1()

	result, err := service.Aggregate(buildFixtureSnapshot(t))
	if err != nil {
		t.Fatal(err)
	}

	if result.Count() != 2 {
		t.Fatalf("expected 2 customers in output, got %d", result.Count())
	}

	metrics := result.Metrics()
	c1, c2 := metrics[0], metrics[1]

	if c1.CustomerID() != "c1" || c2.CustomerID() != "c2" {
		t.Fatalf("expected [c1 c2], got [%s %s]", c1.CustomerID(), c2.CustomerID())
	}

	// c1: fidèle haute valeur, très satisfait
	if c1.TotalOrders() != 6 {
		t.Errorf("c1 total orders = %d, want 6", c1.TotalOrders())
	}
	if c1.TotalSpent().Cents() != 120_000 {
		t.Errorf("c1 total spent = %d cents, want 120000", c1.TotalSpent().Cents())
	}
	if c1.AvgOrderValue().Cents() != 20_000 {
		t.Errorf("c1 avg order value = %d cents, want 20000", c1.AvgOrderValue().Cents())
	}
	if !c1.FirstOrderDate().Equal(day(2017, time.January, 15)) {
		t.Errorf("c1 first order date = %v", c1.FirstOrderDate())
	}
	if !c1.LastOrderDate().Equal(day(2017, time.June, 15)) {
		t.Errorf("c1 last order date = %v", c1.LastOrderDate())
	}
	if c1.LifespanDays() != 151 {
		t.Errorf("c1 lifespan = %d days, want 151", c1.LifespanDays())
	}
	if c1.Segment() != domain.SegmentHighValueLoyal {
		t.Errorf("c1 segment = %q", c1.Segment())
	}
	if c1.Satisfaction() != domain.SatisfactionVerySatisfied {
		t.Errorf("c1 satisfaction = %q", c1.Satisfaction())
	}

	// c2: acheteur occasionnel, aucun avis
	if c2.TotalOrders() != 1 {
		t.Errorf("c2 total orders = %d, want 1", c2.TotalOrders())
	}
	if c2.TotalSpent().Cents() != 5_000 {
		t.Errorf("c2 total spent = %d cents, want 5000", c2.TotalSpent().Cents())
	}
	if c2.LifespanDays() != 0 {
		t.Errorf("c2 lifespan = %d days, want 0", c2.LifespanDays())
	}
	if c2.Segment() != domain.SegmentOccasionalBuyer {
		t.Errorf("c2 segment = %q", c2.Segment())
	}
	if c2.AvgReviewScore().Valid() {
		t.Error("c2 review score should be undefined")
	}
	if c2.Satisfaction() != domain.SatisfactionUnknown {
		t.Errorf("c2 satisfaction = %q", c2.Satisfaction())
	}

	report := result.Discrepancies()
	want := domain.DiscrepancyReport{OrphanOrders: 1, OrphanItems: 2, OrphanReviews: 1}
	if report != want {
		t.Errorf("discrepancy report = %+v, want %+v", report, want)
	}
}

func TestAggregationServiceV1_EmptySnapshot(t *testing.T) {
	service := NewAggregationServiceV1()

	result, err := service.Aggregate(domain.NewSnapshot(nil, nil, nil, nil))
	if err != nil {
		t.Fatal(err)
	}

	if result.Count() != 0 {
		t.Errorf("expected empty output, got %d rows", result.Count())
	}
	if !result.Discrepancies().IsClean() {
		t.Errorf("expected clean report, got %+v", result.Discrepancies())
	}
}

func TestAggregationServiceV1_Idempotent(t *testing.T) {
	service := NewAggregationServiceV1()
	snapshot := buildFixtureSnapshot(t)

	first, err := service.Aggregate(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	second, err := service.Aggregate(snapshot)
	if err != nil {
		t.Fatal(err)
	}

	assertSameMetrics(t, first.Metrics(), second.Metrics())
	if first.Discrepancies() != second.Discrepancies() {
		t.Errorf("reports differ: %+v vs %+v", first.Discrepancies(), second.Discrepancies())
	}
}

// buildRandomSnapshot génère un snapshot pseudo-aléatoire reproductible,
// références pendantes comprises
func buildRandomSnapshot(tb testing.TB, seed int64) *domain.Snapshot {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))

	var customers []*customersdomain.Customer
	for i := 0; i < 40; i++ {
		customers = append(customers, mustCustomer(tb, "cust-"+string(rune('a'+i%26))+string(rune('0'+i/26))))
	}

	base := day(2017, time.January, 1)
	var orders []*ordersdomain.Order
	var items []*ordersdomain.OrderItem
	var reviews []*ordersdomain.Review

	for i := 0; i < 200; i++ {
		orderID := ordersdomain.OrderID(string(rune('a'+i%26)) + "-" + string(rune('0'+(i/26)%10)) + string(rune('0'+i/260)))

		customerID := customers[rng.Intn(len(customers))].ID()
		if rng.Intn(20) == 0 {
			customerID = "ghost" // commande orpheline
		}

		orders = append(orders, mustOrder(tb, string(orderID), string(customerID),
			base.AddDate(0, 0, rng.Intn(365))))

		for n := rng.Intn(4); n > 0; n-- {
			items = append(items, mustItem(tb, string(orderID),
				float64(rng.Intn(30000))/100, float64(rng.Intn(5000))/100))
		}
		if rng.Intn(3) != 0 {
			reviews = append(reviews, mustReview(tb, string(orderID), 1+rng.Intn(5)))
		}
	}

	return domain.NewSnapshot(customers, orders, items, reviews)
}

func assertSameMetrics(t *testing.T, got, want []*domain.CustomerMetrics) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("row counts differ: %d vs %d", len(got), len(want))
	}

	for i := range want {
		g, w := got[i], want[i]
		if g.CustomerID() != w.CustomerID() {
			t.Fatalf("row %d: customer %s vs %s", i, g.CustomerID(), w.CustomerID())
		}
		if g.TotalOrders() != w.TotalOrders() ||
			g.TotalSpent().Cents() != w.TotalSpent().Cents() ||
			g.AvgOrderValue().Cents() != w.AvgOrderValue().Cents() ||
			!g.FirstOrderDate().Equal(w.FirstOrderDate()) ||
			!g.LastOrderDate().Equal(w.LastOrderDate()) ||
			g.LifespanDays() != w.LifespanDays() ||
			g.AvgReviewScore() != w.AvgReviewScore() ||
			g.Segment() != w.Segment() ||
			g.Satisfaction() != w.Satisfaction() {
			t.Errorf("customer %s: rows differ", g.CustomerID())
		}
	}
}

// TestAggregation_V1V2Equivalence vérifie que les deux versions produisent
// exactement la même sortie sur des snapshots pseudo-aléatoires
func TestAggregation_V1V2Equivalence(t *testing.T) {
	v1 := NewAggregationServiceV1()

	for _, seed := range []int64{1, 7, 42, 1337} {
		v2 := NewAggregationServiceV2(sharedinfra.NewShardedCache(16), 4)
		snapshot := buildRandomSnapshot(t, seed)

		expected, err := v1.Aggregate(snapshot)
		if err != nil {
			t.Fatal(err)
		}
		actual, err := v2.Aggregate("seed", snapshot)
		if err != nil {
			t.Fatal(err)
		}

		assertSameMetrics(t, actual.Metrics(), expected.Metrics())
		if actual.Discrepancies() != expected.Discrepancies() {
			t.Errorf("seed %d: reports differ: %+v vs %+v",
				seed, actual.Discrepancies(), expected.Discrepancies())
		}
	}
}

func TestAggregationServiceV2_Cache(t *testing.T) {
	cache := sharedinfra.NewShardedCache(16)
	service := NewAggregationServiceV2(cache, 4)

	first, err := service.Aggregate("v-1", buildFixtureSnapshot(t))
	if err != nil {
		t.Fatal(err)
	}

	// Même version de snapshot: le résultat vient du cache, le snapshot
	// passé en second n'est pas recalculé
	cached, err := service.Aggregate("v-1", domain.NewSnapshot(nil, nil, nil, nil))
	if err != nil {
		t.Fatal(err)
	}
	if cached != first {
		t.Error("expected cached result for same snapshot version")
	}

	service.InvalidateCache("v-1")

	recomputed, err := service.Aggregate("v-1", domain.NewSnapshot(nil, nil, nil, nil))
	if err != nil {
		t.Fatal(err)
	}
	if recomputed.Count() != 0 {
		t.Errorf("expected recomputation after invalidation, got %d rows", recomputed.Count())
	}
}

func BenchmarkAggregationV1(b *testing.B) {
	snapshot := buildRandomSnapshot(b, 42)
	service := NewAggregationServiceV1()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := service.Aggregate(snapshot); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAggregationV2_NoCache(b *testing.B) {
	snapshot := buildRandomSnapshot(b, 42)
	service := NewAggregationServiceV2(sharedinfra.NewShardedCache(16), 4)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		service.ClearCache()
		if _, err := service.Aggregate("bench", snapshot); err != nil {
			b.Fatal(err)
		}
	}
}
