package commentaire

import "gorm.io/gorm"

// Repository encapsule l'accès aux commentaires.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(c *Commentaire) error {
	return r.DB.Create(c).Error
}

func (r *Repository) FindByID(id uint) (*Commentaire, error) {
	var c Commentaire
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByPrestataire retourne les commentaires d'un prestataire, récents d'abord.
func (r *Repository) ListByPrestataire(prestataireID uint) ([]Commentaire, error) {
	var list []Commentaire
	err := r.DB.Where("prestataire_id = ?", prestataireID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&Commentaire{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
