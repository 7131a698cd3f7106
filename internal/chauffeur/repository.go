package chauffeur

import (
	"errors"

	"gorm.io/gorm"
)

// Repository encapsule l'accès aux chauffeurs.
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

func (r *Repository) Create(c *Chauffeur) error {
	return r.DB.Create(c).Error
}

func (r *Repository) FindByID(id uint) (*Chauffeur, error) {
	var c Chauffeur
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListAll() ([]Chauffeur, error) {
	var list []Chauffeur
	err := r.DB.Order("nom ASC").Find(&list).Error
	return list, err
}

// ListByPrestataire retourne les chauffeurs rattachés à un prestataire.
func (r *Repository) ListByPrestataire(prestataireID uint) ([]Chauffeur, error) {
	var list []Chauffeur
	err := r.DB.Where("prestataire_id = ?", prestataireID).Order("nom ASC").Find(&list).Error
	return list, err
}

func (r *Repository) Update(c *Chauffeur) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&Chauffeur{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PrestataireDuChauffeur résout le prestataire d'un chauffeur.
// Retourne (nil, nil) si le chauffeur est salarié ou introuvable: le moteur
// de collecte traite ce cas en ignorant la course, sans erreur.
func (r *Repository) PrestataireDuChauffeur(db *gorm.DB, chauffeurID uint) (*uint, error) {
	if db == nil {
		db = r.DB
	}
	var c Chauffeur
	if err := db.First(&c, chauffeurID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c.PrestataireID, nil
}
