package paiement

import (
	"time"

	"gorm.io/gorm"
)

// Statuts d'un paiement externe. Seul un paiement confirmé par le
// processeur peut être rapproché des collectes.
const (
	StatutConfirme = "Confirmé"
	StatutEchoue   = "Échoué"
)

// Paiement est la trace d'un encaissement confirmé côté processeur.
// ReferenceExterne est unique: c'est la garde anti-rejeu du rapprochement.
type Paiement struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ReferenceExterne  string    `gorm:"size:100;not null;uniqueIndex" json:"referenceExterne"`
	PrestataireID     uint      `gorm:"not null;index" json:"prestataireId"`
	Montant           int64     `gorm:"not null" json:"montant"`
	Statut            string    `gorm:"size:50;not null" json:"statut"`
	Recu              string    `gorm:"size:64" json:"recu"`
	MontantAffecte    int64     `gorm:"not null;default:0" json:"montantAffecte"`
	MontantNonAffecte int64     `gorm:"not null;default:0" json:"montantNonAffecte"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Migrate crée la table en base.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Paiement{})
}
