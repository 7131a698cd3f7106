package client

import (
	"time"

	"gorm.io/gorm"
)

// Client représente un passager de la plateforme.
type Client struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Nom       string         `gorm:"size:100;not null" json:"nom"`
	Prenom    string         `gorm:"size:100" json:"prenom"`
	Telephone string         `gorm:"size:20;uniqueIndex" json:"telephone"`
	Email     string         `gorm:"size:100" json:"email"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// Migrate crée la table en base.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Client{})
}
