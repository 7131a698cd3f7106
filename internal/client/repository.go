package client

import "gorm.io/gorm"

// Repository encapsule l'accès aux clients.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(c *Client) error {
	return r.DB.Create(c).Error
}

func (r *Repository) FindByID(id uint) (*Client, error) {
	var c Client
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListAll() ([]Client, error) {
	var list []Client
	err := r.DB.Order("nom ASC").Find(&list).Error
	return list, err
}

func (r *Repository) Update(c *Client) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&Client{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
