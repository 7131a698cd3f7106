package commande

import (
	"time"

	"gorm.io/gorm"
)

// Statuts d'une commande (course).
const (
	StatutEnCours  = "En cours"
	StatutTerminee = "Terminée"
	StatutAnnulee  = "Annulée"
)

// Commande représente une course. Le moteur de collecte ne lit que les
// commandes terminées; une commande terminée est immuable.
// PrixTotal est en centimes.
type Commande struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ClientID    *uint          `gorm:"index" json:"clientId"`
	ChauffeurID *uint          `gorm:"index" json:"chauffeurId"`
	Depart      string         `gorm:"size:255" json:"depart"`
	Arrivee     string         `gorm:"size:255" json:"arrivee"`
	PrixTotal   int64          `gorm:"not null;default:0" json:"prixTotal"`
	Statut      string         `gorm:"size:50;not null;default:'En cours';index" json:"statut"`
	TermineeLe  *time.Time     `json:"termineeLe"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// Migrate crée la table en base.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Commande{})
}
