package collectefrais

import (
	"time"

	"gorm.io/gorm"
)

// CollecteFrais représente le montant dû par un prestataire pour les courses
// d'un de ses chauffeurs sur une période calendaire (mois "YYYY-MM").
//
// Tant que EstPayee est faux, MontantDu et les deux parts ne sont qu'un
// dernier état connu: toute lecture les recalcule depuis CommandeIDs et la
// configuration de frais courante. Une fois payée, la collecte est un fait
// historique figé et n'est plus jamais recalculée.
type CollecteFrais struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	PrestataireID uint   `gorm:"not null;index" json:"prestataireId"`
	ChauffeurID   uint   `gorm:"not null;index" json:"chauffeurId"`
	Periode       string `gorm:"size:7;not null;index" json:"periode"`

	MontantDu        int64 `gorm:"not null;default:0" json:"montantDu"`
	PartFraisService int64 `gorm:"not null;default:0" json:"partFraisService"`
	PartCommission   int64 `gorm:"not null;default:0" json:"partCommission"`
	MontantPaye      int64 `gorm:"not null;default:0" json:"montantPaye"`

	EstPayee bool       `gorm:"not null;default:false;index" json:"estPayee"`
	PayeeLe  *time.Time `json:"payeeLe"`

	// Identifiants des commandes agrégées, en JSONB (append-only par période)
	CommandeIDs []uint `gorm:"type:jsonb;serializer:json" json:"commandeIds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContientCommande indique si la commande fait déjà partie de la collecte.
func (c *CollecteFrais) ContientCommande(commandeID uint) bool {
	for _, id := range c.CommandeIDs {
		if id == commandeID {
			return true
		}
	}
	return false
}

// TableName fixe le nom de table ("frais" est invariable, gorm pluralise mal).
func (CollecteFrais) TableName() string { return "collecte_frais" }

// Migrate crée la table et l'index unique partiel qui garantit au plus une
// collecte impayée par (prestataire, chauffeur, période), même sous écritures
// concurrentes. Le prédicat n'étant pas exprimable en tag gorm, l'index est
// posé en SQL.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&CollecteFrais{}); err != nil {
		return err
	}
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_collecte_impayee_tuple " +
			"ON collecte_frais (prestataire_id, chauffeur_id, periode) WHERE NOT est_payee",
	).Error
}
