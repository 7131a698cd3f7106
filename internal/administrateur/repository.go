package administrateur

import "gorm.io/gorm"

// Repository encapsule l'accès aux administrateurs.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(a *Administrateur) error {
	return r.DB.Create(a).Error
}

func (r *Repository) FindByID(id uint) (*Administrateur, error) {
	var a Administrateur
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) FindByEmail(email string) (*Administrateur, error) {
	var a Administrateur
	if err := r.DB.Where("email = ?", email).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) ListAll() ([]Administrateur, error) {
	var list []Administrateur
	err := r.DB.Order("nom ASC").Find(&list).Error
	return list, err
}
