package collectefrais

import (
	"github.com/Tapea/api-prestataire/internal/chauffeur"
	"github.com/Tapea/api-prestataire/internal/commande"
	"github.com/Tapea/api-prestataire/internal/configfrais"
	"github.com/Tapea/api-prestataire/internal/paiement"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notifieur est prévenu après un rapprochement réussi (webhook, etc.).
type Notifieur interface {
	PaiementRapproche(prestataireID uint, reference string, montantAffecte, montantNonAffecte int64)
}

// Service porte toute la logique de collecte: agrégation, recalcul en
// lecture, rapprochement des paiements et reconstruction.
type Service struct {
	DB         *gorm.DB
	Collectes  *Repository
	Commandes  *commande.Repository
	Chauffeurs *chauffeur.Repository
	Config     *configfrais.Repository
	Paiements  *paiement.Repository
	Notif      Notifieur
	Log        *zap.Logger
}

func NewService(
	db *gorm.DB,
	collectes *Repository,
	commandes *commande.Repository,
	chauffeurs *chauffeur.Repository,
	config *configfrais.Repository,
	paiements *paiement.Repository,
	notif Notifieur,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		DB:         db,
		Collectes:  collectes,
		Commandes:  commandes,
		Chauffeurs: chauffeurs,
		Config:     config,
		Paiements:  paiements,
		Notif:      notif,
		Log:        log,
	}
}
