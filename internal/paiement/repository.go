package paiement

import (
	"errors"

	"gorm.io/gorm"
)

// Repository encapsule l'accès aux paiements externes.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retourne une copie du repo sur un *gorm.DB donné (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

// Create insère le paiement; l'index unique sur reference_externe fait foi.
func (r *Repository) Create(p *Paiement) error {
	return r.DB.Create(p).Error
}

// ExisteParReference indique si une référence externe a déjà été traitée.
func (r *Repository) ExisteParReference(ref string) (bool, error) {
	var p Paiement
	err := r.DB.Where("reference_externe = ?", ref).First(&p).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// ListByPrestataire retourne l'historique des paiements d'un prestataire.
func (r *Repository) ListByPrestataire(prestataireID uint) ([]Paiement, error) {
	var list []Paiement
	err := r.DB.Where("prestataire_id = ?", prestataireID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// Update sauvegarde les montants affectés après rapprochement.
func (r *Repository) Update(p *Paiement) error {
	return r.DB.Save(p).Error
}
