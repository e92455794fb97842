package domain

import (
	"errors"
	"fmt"
)

// ReviewScoreMin et ReviewScoreMax bornent la note d'un avis
const (
	ReviewScoreMin = 1
	ReviewScoreMax = 5
)

// Review représente un avis attaché à une commande
type Review struct {
	orderID OrderID
	score   int
}

// NewReview crée un nouvel avis avec validation de la note
func NewReview(orderID OrderID, score int) (*Review, error) {
	if orderID == "" {
		return nil, errors.New("invalid order ID")
	}
	if score < ReviewScoreMin || score > ReviewScoreMax {
		return nil, fmt.Errorf("review score must be between %d and %d, got %d", ReviewScoreMin, ReviewScoreMax, score)
	}

	return &Review{
		orderID: orderID,
		score:   score,
	}, nil
}

// OrderID retourne l'identifiant de la commande notée
func (r *Review) OrderID() OrderID {
	return r.orderID
}

// Score retourne la note (1 à 5)
func (r *Review) Score() int {
	return r.score
}
