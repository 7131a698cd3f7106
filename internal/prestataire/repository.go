package prestataire

import (
	"github.com/Tapea/api-prestataire/internal/chauffeur"
	"github.com/Tapea/api-prestataire/internal/collectefrais"
	"gorm.io/gorm"
)

// Repository encapsule l'accès aux prestataires.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(p *Prestataire) error {
	return r.DB.Create(p).Error
}

func (r *Repository) FindByID(id uint) (*Prestataire, error) {
	var p Prestataire
	if err := r.DB.Preload("Chauffeurs").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) FindByEmail(email string) (*Prestataire, error) {
	var p Prestataire
	if err := r.DB.Where("email = ?", email).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListAll() ([]Prestataire, error) {
	var list []Prestataire
	err := r.DB.Preload("Chauffeurs").Order("nom ASC").Find(&list).Error
	return list, err
}

func (r *Repository) Update(p *Prestataire) error {
	return r.DB.Save(p).Error
}

func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&Prestataire{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MonterResume assemble le résumé d'un prestataire depuis ses chauffeurs et
// ses collectes (les impayées doivent déjà être recalculées à jour).
func MonterResume(p Prestataire, chauffeurs []chauffeur.Chauffeur, collectes []collectefrais.CollecteFrais) ResumePrestataireDTO {
	actifs := 0
	for _, c := range chauffeurs {
		if c.Actif {
			actifs++
		}
	}

	var impaye, regle int64
	for _, col := range collectes {
		if col.EstPayee {
			regle += col.MontantPaye
		} else {
			impaye += col.MontantDu - col.MontantPaye
		}
	}

	return ResumePrestataireDTO{
		ID:               p.ID,
		Nom:              p.Nom,
		SIRET:            p.SIRET,
		Email:            p.Email,
		Telephone:        p.Telephone,
		Logo:             p.Logo,
		ChauffeursActifs: actifs,
		MontantImpaye:    impaye,
		MontantRegle:     regle,
	}
}
