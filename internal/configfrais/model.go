package configfrais

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// ConfigFrais porte les pourcentages appliqués aux courses terminées.
// Une seule ligne active (ID fixe); aucune historisation: un changement
// s'applique rétroactivement à tout ce qui n'est pas encore réglé.
type ConfigFrais struct {
	ID                      uint    `gorm:"primaryKey" json:"id"`
	FraisServicePrestataire float64 `gorm:"not null;default:0" json:"fraisServicePrestataire"`
	CommissionPrestataire   float64 `gorm:"not null;default:0" json:"commissionPrestataire"`
	CommissionSalarieTapea  float64 `gorm:"not null;default:0" json:"commissionSalarieTapea"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IDConfigActive est l'identifiant de la ligne unique de configuration.
const IDConfigActive uint = 1

// Migrate crée la table en base.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ConfigFrais{})
}

// DepuisEnv construit la configuration initiale depuis les valeurs
// d'environnement. Les trois pourcentages sont obligatoires et bornés: un
// premier démarrage sans eux doit échouer plutôt que facturer 0%.
func DepuisEnv(fraisService, commission, commissionSalarie string) (*ConfigFrais, error) {
	lire := func(nom, v string) (float64, error) {
		if v == "" {
			return 0, fmt.Errorf("%s manquant", nom)
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%s invalide: %w", nom, err)
		}
		if f < 0 || f > 100 {
			return 0, fmt.Errorf("%s doit être compris entre 0 et 100", nom)
		}
		return f, nil
	}

	fs, err := lire("FRAIS_SERVICE_PRESTATAIRE", fraisService)
	if err != nil {
		return nil, err
	}
	cp, err := lire("COMMISSION_PRESTATAIRE", commission)
	if err != nil {
		return nil, err
	}
	cs, err := lire("COMMISSION_SALARIE_TAPEA", commissionSalarie)
	if err != nil {
		return nil, err
	}

	return &ConfigFrais{
		FraisServicePrestataire: fs,
		CommissionPrestataire:   cp,
		CommissionSalarieTapea:  cs,
	}, nil
}
