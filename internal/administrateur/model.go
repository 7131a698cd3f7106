package administrateur

import (
	"time"

	"gorm.io/gorm"
)

// Administrateur représente un compte du back-office Tapea.
type Administrateur struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Nom        string    `gorm:"size:100;not null" json:"nom"`
	Prenom     string    `gorm:"size:100;not null" json:"prenom"`
	Email      string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	MotDePasse string    `gorm:"size:255;not null" json:"-"`
	Telephone  string    `gorm:"size:20" json:"telephone"`
	Photo      string    `gorm:"size:255" json:"photo"`
	EstAdmin   bool      `gorm:"default:true" json:"estAdmin"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Migrate crée la table en base.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Administrateur{})
}
