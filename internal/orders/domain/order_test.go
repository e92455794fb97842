package domain

import (
	"testing"
	"time"

	customersdomain "segmetrics/internal/customers/domain"
	shareddomain "segmetrics/internal/shared/domain"
)

func TestNewOrder(t *testing.T) {
	purchased := time.Date(2017, time.March, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		id         OrderID
		customerID customersdomain.CustomerID
		status     OrderStatus
		purchased  time.Time
		wantErr    bool
	}{
		{"commande valide", "o1", "c1", OrderStatusDelivered, purchased, false},
		{"statut expédié", "o1", "c1", OrderStatusShipped, purchased, false},
		{"identifiant vide", "", "c1", OrderStatusDelivered, purchased, true},
		{"client vide", "o1", "", OrderStatusDelivered, purchased, true},
		{"statut inconnu", "o1", "c1", "teleported", purchased, true},
		{"date zéro", "o1", "c1", OrderStatusDelivered, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrder(tt.id, tt.customerID, tt.status, tt.purchased)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewOrder() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOrderItem_Total(t *testing.T) {
	price, err := shareddomain.NewMoney(120.50, "BRL")
	if err != nil {
		t.Fatal(err)
	}
	freight, err := shareddomain.NewMoney(19.90, "BRL")
	if err != nil {
		t.Fatal(err)
	}

	item, err := NewOrderItem("o1", price, freight)
	if err != nil {
		t.Fatal(err)
	}

	total, err := item.Total()
	if err != nil {
		t.Fatal(err)
	}
	if total.Cents() != 14_040 {
		t.Errorf("total = %d cents, want 14040", total.Cents())
	}
}

func TestNewOrderItem_CurrencyMismatch(t *testing.T) {
	price, err := shareddomain.NewMoney(10, "BRL")
	if err != nil {
		t.Fatal(err)
	}
	freight, err := shareddomain.NewMoney(2, "EUR")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewOrderItem("o1", price, freight); err == nil {
		t.Error("expected an error for mixed currencies")
	}
}

func TestNewReview(t *testing.T) {
	for score := ReviewScoreMin; score <= ReviewScoreMax; score++ {
		if _, err := NewReview("o1", score); err != nil {
			t.Errorf("score %d should be valid: %v", score, err)
		}
	}

	for _, score := range []int{0, -1, 6, 100} {
		if _, err := NewReview("o1", score); err == nil {
			t.Errorf("score %d should be rejected", score)
		}
	}

	if _, err := NewReview("", 5); err == nil {
		t.Error("expected an error for empty order ID")
	}
}
