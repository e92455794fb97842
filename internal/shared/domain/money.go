package domain

import (
	"errors"
	"fmt"
	"math"
)

// Money représente une valeur monétaire en centimes (point fixe)
// Les montants sont accumulés en int64 pour ne perdre aucun centime sur de
// longues sommes; l'arrondi à 2 décimales n'a lieu qu'à la présentation
type Money struct {
	cents    int64
	currency string
}

// NewMoney crée une nouvelle instance de Money avec validation
// Le montant décimal est converti en centimes (arrondi au centime le plus proche)
func NewMoney(amount float64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errors.New("amount cannot be negative")
	}
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{
		cents:    int64(math.Round(amount * 100)),
		currency: currency,
	}, nil
}

// NewMoneyFromCents crée un Money directement depuis des centimes
func NewMoneyFromCents(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("amount cannot be negative")
	}
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{cents: cents, currency: currency}, nil
}

// MustNewMoney crée un Money en paniquant si invalide
func MustNewMoney(amount float64, currency string) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(fmt.Sprintf("invalid money: %v", err))
	}
	return m
}

// Amount retourne le montant décimal (présentation uniquement)
func (m Money) Amount() float64 {
	return float64(m.cents) / 100
}

// Cents retourne le montant exact en centimes
func (m Money) Cents() int64 {
	return m.cents
}

// Currency retourne la devise
func (m Money) Currency() string {
	return m.currency
}

// Add additionne deux Money (même devise requise)
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{
		cents:    m.cents + other.cents,
		currency: m.currency,
	}, nil
}

// DivideBy divise le montant par un compteur (valeur moyenne par commande)
// Arrondi au centime le plus proche, demi-centime vers le haut
func (m Money) DivideBy(count int) (Money, error) {
	if count <= 0 {
		return Money{}, errors.New("division count must be positive")
	}
	half := int64(count) / 2
	return Money{
		cents:    (m.cents + half) / int64(count),
		currency: m.currency,
	}, nil
}

// GreaterOrEqual compare deux Money (même devise requise)
func (m Money) GreaterOrEqual(other Money) bool {
	return m.currency == other.currency && m.cents >= other.cents
}

// IsZero vérifie si le montant est zéro
func (m Money) IsZero() bool {
	return m.cents == 0
}

// String formate le montant pour l'affichage (2 décimales)
func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Amount(), m.currency)
}
