package commande

import (
	"gorm.io/gorm"
)

// Repository encapsule l'accès aux commandes.
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

func (r *Repository) Create(c *Commande) error {
	return r.DB.Create(c).Error
}

func (r *Repository) FindByID(id uint) (*Commande, error) {
	var c Commande
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListAll() ([]Commande, error) {
	var list []Commande
	err := r.DB.Order("created_at DESC").Find(&list).Error
	return list, err
}

// ListTerminees retourne toutes les commandes terminées, plus anciennes d'abord.
func (r *Repository) ListTerminees(db *gorm.DB) ([]Commande, error) {
	if db == nil {
		db = r.DB
	}
	var list []Commande
	err := db.Where("statut = ?", StatutTerminee).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

// FindByIDs retourne les commandes dont l'ID figure dans la liste.
func (r *Repository) FindByIDs(db *gorm.DB, ids []uint) ([]Commande, error) {
	if db == nil {
		db = r.DB
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var list []Commande
	err := db.Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *Repository) Update(c *Commande) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&Commande{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
