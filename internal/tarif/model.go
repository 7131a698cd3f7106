package tarif

import (
	"time"

	"gorm.io/gorm"
)

// Tarif représente une grille tarifaire applicable aux courses.
// Les montants sont en centimes.
type Tarif struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Nom            string         `gorm:"size:100;not null;uniqueIndex" json:"nom"`
	PriseEnCharge  int64          `gorm:"not null;default:0" json:"priseEnCharge"`
	PrixParKm      int64          `gorm:"not null;default:0" json:"prixParKm"`
	PrixParMinute  int64          `gorm:"not null;default:0" json:"prixParMinute"`
	MontantMinimum int64          `gorm:"not null;default:0" json:"montantMinimum"`
	Actif          bool           `gorm:"not null;default:true" json:"actif"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// Migrate crée la table en base.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Tarif{})
}
