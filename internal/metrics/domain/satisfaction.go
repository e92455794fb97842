package domain

import "segmetrics/internal/shared/domain"

// SatisfactionLevel représente le niveau de satisfaction dérivé des avis
type SatisfactionLevel string

const (
	SatisfactionVerySatisfied SatisfactionLevel = "Very Satisfied"
	SatisfactionSatisfied     SatisfactionLevel = "Satisfied"
	SatisfactionNeutral       SatisfactionLevel = "Neutral"
	SatisfactionDissatisfied  SatisfactionLevel = "Dissatisfied"
	SatisfactionUnknown       SatisfactionLevel = "Unknown"
)

// satisfactionRule représente une règle de classification ordonnée
type satisfactionRule struct {
	minScore float64
	level    SatisfactionLevel
}

// satisfactionRules est évaluée dans l'ordre strict, première règle gagnante
var satisfactionRules = []satisfactionRule{
	{minScore: 4.5, level: SatisfactionVerySatisfied},
	{minScore: 4.0, level: SatisfactionSatisfied},
	{minScore: 3.0, level: SatisfactionNeutral},
}

// ClassifySatisfaction classe un client selon sa note moyenne d'avis
// Un score indéfini (aucun avis) produit la catégorie explicite Unknown:
// il ne doit jamais être traité comme un zéro numérique
func ClassifySatisfaction(score domain.ReviewScore) SatisfactionLevel {
	if !score.Valid() {
		return SatisfactionUnknown
	}
	for _, rule := range satisfactionRules {
		if score.Value() >= rule.minScore {
			return rule.level
		}
	}
	return SatisfactionDissatisfied
}
