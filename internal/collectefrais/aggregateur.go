package collectefrais

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Tapea/api-prestataire/internal/commande"
	"github.com/Tapea/api-prestataire/internal/configfrais"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

/* ============================== Calcul pur ============================== */

// Periode tronque un horodatage à sa période calendaire "YYYY-MM",
// dans le calendrier de l'horodatage lui-même (pas de conversion de fuseau).
func Periode(t time.Time) string {
	return t.Format("2006-01")
}

// CalculerParts calcule les deux composantes de frais d'une course, chacune
// indépendamment depuis le prix total (jamais composées entre elles).
// Arrondi au centime le plus proche, demi-centime vers le haut.
func CalculerParts(prixTotal int64, cfg *configfrais.ConfigFrais) (partService, partCommission int64) {
	prix := decimal.NewFromInt(prixTotal)
	cent := decimal.NewFromInt(100)

	partService = prix.
		Mul(decimal.NewFromFloat(cfg.FraisServicePrestataire)).
		Div(cent).
		Round(0).
		IntPart()
	partCommission = prix.
		Mul(decimal.NewFromFloat(cfg.CommissionPrestataire)).
		Div(cent).
		Round(0).
		IntPart()
	return partService, partCommission
}

// CalculerMontant agrège les parts de frais d'un lot de commandes.
// MontantDu == PartFraisService + PartCommission, toujours.
func CalculerMontant(commandes []commande.Commande, cfg *configfrais.ConfigFrais) (montantDu, partService, partCommission int64) {
	for _, c := range commandes {
		ps, pc := CalculerParts(c.PrixTotal, cfg)
		partService += ps
		partCommission += pc
	}
	return partService + partCommission, partService, partCommission
}

/* ============================ Agrégation incrémentale ============================ */

// EnregistrerCommande rattache une commande terminée à la collecte impayée de
// son (prestataire, chauffeur, période), en la créant au besoin.
// Commande sans chauffeur ou chauffeur sans prestataire: ignorée, journalisée.
//
// Si db est fourni, tout s'exécute dans cette transaction (cas de la clôture
// de commande: statut et collecte basculent ensemble ou pas du tout). Sinon la
// méthode ouvre sa propre transaction et rejoue en cas de création concurrente
// d'une collecte sur le même tuple (index unique partiel).
func (s *Service) EnregistrerCommande(db *gorm.DB, commandeID uint) error {
	if db != nil {
		return s.enregistrerCommande(db, commandeID)
	}

	var err error
	for essai := 0; essai < essaisTransaction; essai++ {
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			return s.enregistrerCommande(tx, commandeID)
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		s.Log.Warn("création concurrente d'une collecte sur le même tuple, nouvel essai",
			zap.Uint("commandeId", commandeID),
			zap.Int("essai", essai+1))
	}
	return err
}

func (s *Service) enregistrerCommande(tx *gorm.DB, commandeID uint) error {
	cmd, err := s.Commandes.WithDB(tx).FindByID(commandeID)
	if err != nil {
		return fmt.Errorf("commande %d introuvable: %w", commandeID, err)
	}
	if cmd.Statut != commande.StatutTerminee {
		return fmt.Errorf("commande %d non terminée", commandeID)
	}
	if cmd.ChauffeurID == nil {
		s.Log.Info("commande sans chauffeur, ignorée pour la collecte",
			zap.Uint("commandeId", commandeID))
		return nil
	}

	cfg, err := s.Config.Get(tx)
	if err != nil {
		// Jamais de repli sur 0%: l'absence de configuration est fatale.
		return err
	}

	prestataireID, err := s.Chauffeurs.PrestataireDuChauffeur(tx, *cmd.ChauffeurID)
	if err != nil {
		return err
	}
	if prestataireID == nil {
		s.Log.Info("chauffeur sans prestataire, commande ignorée pour la collecte",
			zap.Uint("commandeId", commandeID),
			zap.Uint("chauffeurId", *cmd.ChauffeurID))
		return nil
	}

	periode := Periode(cmd.CreatedAt)

	// Une commande ne peut apparaître que dans les collectes de son propre
	// tuple: vérifier ce tuple suffit à interdire la double facturation,
	// payées comprises.
	deja, err := s.Collectes.CommandeDejaCollectee(tx, *prestataireID, *cmd.ChauffeurID, periode, commandeID)
	if err != nil {
		return err
	}
	if deja {
		return nil
	}

	col, err := s.Collectes.FindImpayee(tx, *prestataireID, *cmd.ChauffeurID, periode)
	if err != nil {
		return err
	}
	if col == nil {
		col = &CollecteFrais{
			PrestataireID: *prestataireID,
			ChauffeurID:   *cmd.ChauffeurID,
			Periode:       periode,
		}
	}

	col.CommandeIDs = append(col.CommandeIDs, commandeID)
	sort.Slice(col.CommandeIDs, func(i, j int) bool { return col.CommandeIDs[i] < col.CommandeIDs[j] })

	lot, err := s.Commandes.FindByIDs(tx, col.CommandeIDs)
	if err != nil {
		return err
	}
	col.MontantDu, col.PartFraisService, col.PartCommission = CalculerMontant(lot, cfg)

	return s.Collectes.Sauvegarder(tx, col)
}

/* ============================== Recalcul en lecture ============================== */

// MontantsCourants recalcule en mémoire le montant d'une collecte impayée
// depuis ses commandes et la configuration courante. Une collecte payée est
// retournée telle quelle: ses montants sont figés.
func (s *Service) MontantsCourants(col *CollecteFrais, cfg *configfrais.ConfigFrais) error {
	if col.EstPayee {
		return nil
	}
	lot, err := s.Commandes.FindByIDs(nil, col.CommandeIDs)
	if err != nil {
		return err
	}
	col.MontantDu, col.PartFraisService, col.PartCommission = CalculerMontant(lot, cfg)
	return nil
}

// ListerAvecMontantsCourants retourne les collectes d'un prestataire, les
// impayées recalculées à la volée.
func (s *Service) ListerAvecMontantsCourants(prestataireID uint, seulementImpayees bool) ([]CollecteFrais, error) {
	cfg, err := s.Config.Get(nil)
	if err != nil {
		return nil, err
	}

	list, err := s.Collectes.ListByPrestataire(nil, prestataireID, seulementImpayees)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if err := s.MontantsCourants(&list[i], cfg); err != nil {
			return nil, err
		}
	}
	return list, nil
}
