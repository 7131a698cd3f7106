package prestataire

import (
	"github.com/Tapea/api-prestataire/internal/chauffeur"
	"gorm.io/gorm"
)

// Prestataire représente une société ou un indépendant fournissant des
// chauffeurs et véhicules à la plateforme.
type Prestataire struct {
	gorm.Model
	Nom                   string                `json:"nom"`
	SIRET                 string                `json:"siret" gorm:"unique"`
	Email                 string                `json:"email" gorm:"unique"`
	Telephone             string                `json:"telephone"`
	Logo                  string                `json:"logo"`
	MotDePasse            string                `json:"-"`
	DoitChangerMotDePasse bool                  `json:"-"`
	Chauffeurs            []chauffeur.Chauffeur `gorm:"foreignKey:PrestataireID" json:"chauffeurs,omitempty"`
}

// Migrate crée la table en base.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Prestataire{})
}
