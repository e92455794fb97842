package domain

import "testing"

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		currency  string
		wantCents int64
		wantErr   bool
	}{
		{"montant simple", 10.50, "BRL", 1050, false},
		{"zéro", 0, "BRL", 0, false},
		{"arrondi au centime", 19.999, "BRL", 2000, false},
		{"montant négatif", -1.0, "BRL", 0, true},
		{"devise vide", 10.0, "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoney(tt.amount, tt.currency)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewMoney(%v, %q) error = %v, wantErr %v", tt.amount, tt.currency, err, tt.wantErr)
			}
			if err == nil && m.Cents() != tt.wantCents {
				t.Errorf("Cents() = %d, want %d", m.Cents(), tt.wantCents)
			}
		})
	}
}

// TestMoney_AddExact vérifie qu'une longue somme de centimes est exacte
// (pas de dérive flottante sur l'accumulation)
func TestMoney_AddExact(t *testing.T) {
	total := MustNewMoney(0, "BRL")
	for i := 0; i < 10000; i++ {
		item := MustNewMoney(0.01, "BRL")
		var err error
		total, err = total.Add(item)
		if err != nil {
			t.Fatal(err)
		}
	}

	if total.Cents() != 10000 {
		t.Errorf("10000 × 0.01 = %d cents, want 10000", total.Cents())
	}
	if total.Amount() != 100.0 {
		t.Errorf("Amount() = %v, want 100.0", total.Amount())
	}
}

func TestMoney_AddDifferentCurrencies(t *testing.T) {
	brl := MustNewMoney(10, "BRL")
	eur := MustNewMoney(10, "EUR")

	if _, err := brl.Add(eur); err == nil {
		t.Error("expected error when adding different currencies")
	}
}

func TestMoney_DivideBy(t *testing.T) {
	tests := []struct {
		name      string
		cents     int64
		count     int
		wantCents int64
		wantErr   bool
	}{
		{"division exacte", 1200, 6, 200, false},
		{"arrondi demi vers le haut", 1001, 2, 501, false},
		{"arrondi vers le bas", 1000, 3, 333, false},
		{"compteur nul", 1000, 0, 0, true},
		{"compteur négatif", 1000, -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := NewMoneyFromCents(tt.cents, "BRL")
			got, err := m.DivideBy(tt.count)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DivideBy(%d) error = %v, wantErr %v", tt.count, err, tt.wantErr)
			}
			if err == nil && got.Cents() != tt.wantCents {
				t.Errorf("DivideBy(%d) = %d cents, want %d", tt.count, got.Cents(), tt.wantCents)
			}
		})
	}
}

func TestMoney_GreaterOrEqual(t *testing.T) {
	a := MustNewMoney(1000, "BRL")
	b := MustNewMoney(999.99, "BRL")
	eur := MustNewMoney(1, "EUR")

	if !a.GreaterOrEqual(b) {
		t.Error("1000.00 >= 999.99 should hold")
	}
	if !a.GreaterOrEqual(a) {
		t.Error("comparison must be inclusive")
	}
	if b.GreaterOrEqual(a) {
		t.Error("999.99 >= 1000.00 should not hold")
	}
	if a.GreaterOrEqual(eur) {
		t.Error("different currencies must never compare as greater-or-equal")
	}
}

func TestReviewScore(t *testing.T) {
	undefined, err := NewReviewScore(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if undefined.Valid() {
		t.Error("score with no reviews must be undefined")
	}
	if undefined.ValueOrNil() != nil {
		t.Error("undefined score must serialize as nil, not 0")
	}

	// Scénario: avis [5, 4, 5] -> moyenne 4.666...
	avg, err := NewReviewScore(14, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !avg.Valid() {
		t.Fatal("score with reviews must be defined")
	}
	if got := avg.Value(); got < 4.66 || got > 4.67 {
		t.Errorf("Value() = %v, want ~4.667", got)
	}

	if _, err := NewReviewScore(-1, 2); err == nil {
		t.Error("negative sum must be rejected")
	}
}
