package chauffeur

import (
	"time"

	"gorm.io/gorm"
)

// Types de chauffeur: rattaché à un prestataire, ou salarié Tapea.
const (
	TypePrestataire = "Prestataire"
	TypeSalarie     = "Salarié"
)

// Chauffeur représente un conducteur actif sur la plateforme.
// Un chauffeur salarié n'a pas de prestataire: ses courses ne génèrent
// aucune collecte de frais (sa commission relève de la paie).
type Chauffeur struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Nom           string         `gorm:"size:100;not null" json:"nom"`
	Prenom        string         `gorm:"size:100;not null" json:"prenom"`
	Telephone     string         `gorm:"size:20" json:"telephone"`
	Email         string         `gorm:"size:100;uniqueIndex" json:"email"`
	Photo         string         `gorm:"size:255" json:"photo"`
	Type          string         `gorm:"size:50;not null;default:'Prestataire'" json:"type"`
	PrestataireID *uint          `gorm:"index" json:"prestataireId"`
	Actif         bool           `gorm:"not null;default:true" json:"actif"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// Migrate crée la table en base.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Chauffeur{})
}
