package commentaire

import (
	"time"

	"gorm.io/gorm"
)

// Commentaire est une note interne posée par un administrateur sur la fiche
// d'un prestataire.
type Commentaire struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	PrestataireID    uint           `gorm:"not null;index" json:"prestataireId"`
	AdministrateurID uint           `gorm:"not null;index" json:"administrateurId"`
	Texte            string         `gorm:"type:text;not null" json:"texte"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// Migrate crée la table en base.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Commentaire{})
}
