package tarif

import "gorm.io/gorm"

// Repository encapsule l'accès aux tarifs.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(t *Tarif) error {
	return r.DB.Create(t).Error
}

func (r *Repository) FindByID(id uint) (*Tarif, error) {
	var t Tarif
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) ListAll() ([]Tarif, error) {
	var list []Tarif
	err := r.DB.Order("nom ASC").Find(&list).Error
	return list, err
}

// ListActifs retourne les grilles actives uniquement.
func (r *Repository) ListActifs() ([]Tarif, error) {
	var list []Tarif
	err := r.DB.Where("actif = ?", true).Order("nom ASC").Find(&list).Error
	return list, err
}

func (r *Repository) Update(t *Tarif) error {
	return r.DB.Save(t).Error
}

func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&Tarif{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
