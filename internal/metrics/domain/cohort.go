package domain

import (
	"errors"
	"time"
)

// MonthOf tronque un horodatage au premier jour de son mois calendaire (UTC)
// Clé de cohorte: le mois de la première commande du client
func MonthOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth retourne le premier jour du mois suivant
func NextMonth(month time.Time) time.Time {
	return month.AddDate(0, 1, 0)
}

// CohortRow représente la rétention d'une cohorte pour un mois d'activité
type CohortRow struct {
	cohortMonth     time.Time
	activityMonth   time.Time
	cohortSize      int
	activeCustomers int
}

// NewCohortRow crée une ligne de rétention avec validation
func NewCohortRow(cohortMonth, activityMonth time.Time, cohortSize, activeCustomers int) (*CohortRow, error) {
	if cohortSize < 1 {
		return nil, errors.New("cohort size must be at least 1")
	}
	if activeCustomers < 0 || activeCustomers > cohortSize {
		return nil, errors.New("active customers must be between 0 and cohort size")
	}
	if activityMonth.Before(cohortMonth) {
		return nil, errors.New("activity month cannot precede cohort month")
	}

	return &CohortRow{
		cohortMonth:     cohortMonth,
		activityMonth:   activityMonth,
		cohortSize:      cohortSize,
		activeCustomers: activeCustomers,
	}, nil
}

// CohortMonth retourne le mois de la cohorte
func (cr *CohortRow) CohortMonth() time.Time {
	return cr.cohortMonth
}

// ActivityMonth retourne le mois d'activité observé
func (cr *CohortRow) ActivityMonth() time.Time {
	return cr.activityMonth
}

// CohortSize retourne l'effectif initial de la cohorte
func (cr *CohortRow) CohortSize() int {
	return cr.cohortSize
}

// ActiveCustomers retourne le nombre de clients de la cohorte encore actifs
func (cr *CohortRow) ActiveCustomers() int {
	return cr.activeCustomers
}

// RetentionRate retourne le pourcentage de rétention (0 à 100)
// Le premier mois d'une cohorte vaut 100% par définition; un mois sans
// client restant est rapporté à 0%, jamais omis
func (cr *CohortRow) RetentionRate() float64 {
	return float64(cr.activeCustomers) / float64(cr.cohortSize) * 100
}
