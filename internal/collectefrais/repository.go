package collectefrais

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrConflitConcurrent signale qu'un autre écrivain a modifié la collecte
// entre la lecture et l'écriture gardée. L'opération englobante rejoue.
var ErrConflitConcurrent = errors.New("conflit d'écriture concurrent sur la collecte")

// Repository encapsule l'accès aux collectes de frais.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) base(db *gorm.DB) *gorm.DB {
	if db == nil {
		return r.DB
	}
	return db
}

// FindByID retourne une collecte par son ID.
func (r *Repository) FindByID(db *gorm.DB, id uint) (*CollecteFrais, error) {
	var col CollecteFrais
	if err := r.base(db).First(&col, id).Error; err != nil {
		return nil, err
	}
	return &col, nil
}

// ListByPrestataire retourne les collectes d'un prestataire, plus anciennes
// d'abord. L'ordre chronologique est contractuel: il détermine quelles
// périodes un paiement partiel solde en premier.
func (r *Repository) ListByPrestataire(db *gorm.DB, prestataireID uint, seulementImpayees bool) ([]CollecteFrais, error) {
	q := r.base(db).Where("prestataire_id = ?", prestataireID)
	if seulementImpayees {
		q = q.Where("est_payee = ?", false)
	}
	var list []CollecteFrais
	err := q.Order("created_at ASC, id ASC").Find(&list).Error
	return list, err
}

// FindImpayee retourne la collecte impayée d'un tuple, nil si aucune.
// Il y en a au plus une par (prestataire, chauffeur, période).
func (r *Repository) FindImpayee(db *gorm.DB, prestataireID, chauffeurID uint, periode string) (*CollecteFrais, error) {
	var col CollecteFrais
	err := r.base(db).
		Where("prestataire_id = ? AND chauffeur_id = ? AND periode = ? AND est_payee = ?",
			prestataireID, chauffeurID, periode, false).
		First(&col).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &col, nil
}

// ListByTuple retourne toutes les collectes (payées comprises) d'un tuple.
func (r *Repository) ListByTuple(db *gorm.DB, prestataireID, chauffeurID uint, periode string) ([]CollecteFrais, error) {
	var list []CollecteFrais
	err := r.base(db).
		Where("prestataire_id = ? AND chauffeur_id = ? AND periode = ?",
			prestataireID, chauffeurID, periode).
		Find(&list).Error
	return list, err
}

// CommandeDejaCollectee indique si la commande figure déjà dans une collecte
// de son tuple, payée ou non.
func (r *Repository) CommandeDejaCollectee(db *gorm.DB, prestataireID, chauffeurID uint, periode string, commandeID uint) (bool, error) {
	list, err := r.ListByTuple(db, prestataireID, chauffeurID, periode)
	if err != nil {
		return false, err
	}
	for i := range list {
		if list[i].ContientCommande(commandeID) {
			return true, nil
		}
	}
	return false, nil
}

// ListPayees retourne toutes les collectes payées (historique figé).
func (r *Repository) ListPayees(db *gorm.DB) ([]CollecteFrais, error) {
	var list []CollecteFrais
	err := r.base(db).Where("est_payee = ?", true).Find(&list).Error
	return list, err
}

// Sauvegarder crée ou met à jour une collecte impayée. C'est le seul chemin
// d'écriture de montant_du tant que la collecte n'est pas payée.
func (r *Repository) Sauvegarder(db *gorm.DB, col *CollecteFrais) error {
	if col.EstPayee {
		return errors.New("une collecte payée est immuable")
	}
	return r.base(db).Save(col).Error
}

// SupprimerImpayees efface toutes les collectes impayées; les payées sont de
// l'historique intouchable. Retourne le nombre de lignes supprimées.
func (r *Repository) SupprimerImpayees(db *gorm.DB) (int64, error) {
	res := r.base(db).Where("est_payee = ?", false).Delete(&CollecteFrais{})
	return res.RowsAffected, res.Error
}

// AppliquerPaiement incrémente montant_paye sous garde compare-and-set:
// l'UPDATE n'aboutit que si montant_paye vaut encore la valeur lue. En cas
// de transition vers payée, fige le montant dû et pose payee_le.
func (r *Repository) AppliquerPaiement(
	db *gorm.DB,
	id uint,
	montantPayeAttendu, nouveauMontantPaye int64,
	devientPayee bool,
	montantDuFige, partServiceFigee, partCommissionFigee int64,
	payeeLe time.Time,
) error {
	updates := map[string]interface{}{
		"montant_paye": nouveauMontantPaye,
	}
	if devientPayee {
		updates["est_payee"] = true
		updates["payee_le"] = &payeeLe
		updates["montant_du"] = montantDuFige
		updates["part_frais_service"] = partServiceFigee
		updates["part_commission"] = partCommissionFigee
	}

	res := r.base(db).Model(&CollecteFrais{}).
		Where("id = ? AND montant_paye = ? AND est_payee = ?", id, montantPayeAttendu, false).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflitConcurrent
	}
	return nil
}
