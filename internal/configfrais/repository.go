package configfrais

import (
	"errors"

	"gorm.io/gorm"
)

// ErrConfigAbsente signale l'absence de configuration de frais.
// Jamais de repli silencieux sur 0%: l'appelant doit échouer franchement.
var ErrConfigAbsente = errors.New("configuration des frais absente")

// Repository encapsule l'accès à la ligne unique de ConfigFrais.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Get retourne la configuration active, ErrConfigAbsente si elle n'existe pas.
func (r *Repository) Get(db *gorm.DB) (*ConfigFrais, error) {
	if db == nil {
		db = r.DB
	}
	var cfg ConfigFrais
	if err := db.First(&cfg, IDConfigActive).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfigAbsente
		}
		return nil, err
	}
	return &cfg, nil
}

// Seed crée la ligne de configuration si elle n'existe pas encore.
func (r *Repository) Seed(initiale ConfigFrais) error {
	initiale.ID = IDConfigActive
	var existante ConfigFrais
	err := r.DB.First(&existante, IDConfigActive).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(&initiale).Error
	}
	return err
}

// Appliquer applique une mise à jour partielle et retourne l'état résultant.
func (r *Repository) Appliquer(dto *MajConfigDTO) (*ConfigFrais, error) {
	if err := dto.Valider(); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.FraisServicePrestataire != nil {
		updates["frais_service_prestataire"] = *dto.FraisServicePrestataire
	}
	if dto.CommissionPrestataire != nil {
		updates["commission_prestataire"] = *dto.CommissionPrestataire
	}
	if dto.CommissionSalarieTapea != nil {
		updates["commission_salarie_tapea"] = *dto.CommissionSalarieTapea
	}

	if len(updates) > 0 {
		res := r.DB.Model(&ConfigFrais{}).
			Where("id = ?", IDConfigActive).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrConfigAbsente
		}
	}

	return r.Get(nil)
}
