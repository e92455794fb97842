package domain

import "errors"

// ReviewScore représente une note moyenne d'avis, explicitement nullable
// Un client sans avis a un score indéfini: il ne doit JAMAIS être
// assimilé à 0 (un 0 fausserait la moyenne et le niveau de satisfaction)
type ReviewScore struct {
	value float64
	valid bool
}

// NewReviewScore calcule la note moyenne à partir d'une somme et d'un compteur
// count == 0 produit un score indéfini (pas une erreur)
func NewReviewScore(sum int, count int) (ReviewScore, error) {
	if sum < 0 || count < 0 {
		return ReviewScore{}, errors.New("review sum and count cannot be negative")
	}
	if count == 0 {
		return ReviewScore{}, nil
	}
	return ReviewScore{
		value: float64(sum) / float64(count),
		valid: true,
	}, nil
}

// UndefinedReviewScore retourne un score explicitement indéfini
func UndefinedReviewScore() ReviewScore {
	return ReviewScore{}
}

// Valid indique si le score est défini (au moins un avis)
func (rs ReviewScore) Valid() bool {
	return rs.valid
}

// Value retourne la note moyenne brute (sans arrondi)
// Ne doit être lue que si Valid() est vrai
func (rs ReviewScore) Value() float64 {
	return rs.value
}

// ValueOrNil retourne un pointeur vers la note, nil si indéfinie
// Utilisé pour la sérialisation (JSON null, Parquet OPTIONAL)
func (rs ReviewScore) ValueOrNil() *float64 {
	if !rs.valid {
		return nil
	}
	v := rs.value
	return &v
}
