package collectefrais

import (
	"errors"
	"time"

	"github.com/Tapea/api-prestataire/internal/paiement"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrPaiementNonConfirme: rapprochement demandé sans capture vérifiée.
	ErrPaiementNonConfirme = errors.New("paiement non confirmé par le processeur")
	// ErrPaiementDejaTraite: la référence externe a déjà été rapprochée.
	ErrPaiementDejaTraite = errors.New("paiement déjà traité")
	// ErrMontantInvalide: montant nul ou négatif.
	ErrMontantInvalide = errors.New("montant de paiement invalide")
)

// Nombre d'essais d'une transaction du moteur en cas de conflit d'écriture
// concurrent.
const essaisTransaction = 3

// ResultatReconciliation résume l'affectation d'un paiement.
type ResultatReconciliation struct {
	Recu                string `json:"recu"`
	ReferenceExterne    string `json:"referenceExterne"`
	MontantRecu         int64  `json:"montantRecu"`
	MontantAffecte      int64  `json:"montantAffecte"`
	MontantNonAffecte   int64  `json:"montantNonAffecte"`
	CollectesSoldees    []uint `json:"collectesSoldees"`
	CollectesPartielles []uint `json:"collectesPartielles"`
}

// Rapprocher affecte un paiement confirmé aux collectes impayées du
// prestataire, la dette la plus ancienne d'abord. Tout ou rien: la moindre
// erreur annule l'intégralité du rapprochement, ligne de paiement comprise.
//
// Le surplus éventuel (paiement supérieur à la dette totale) n'est ni
// reporté ni crédité: il est retourné dans MontantNonAffecte et journalisé,
// à charge de l'intégration processeur d'en décider le remboursement.
func (s *Service) Rapprocher(p *paiement.Paiement) (*ResultatReconciliation, error) {
	if p.Statut != paiement.StatutConfirme {
		return nil, ErrPaiementNonConfirme
	}
	if p.Montant <= 0 {
		return nil, ErrMontantInvalide
	}

	var res *ResultatReconciliation
	var err error
	for essai := 0; essai < essaisTransaction; essai++ {
		res, err = s.rapprocherUneFois(p)
		if !errors.Is(err, ErrConflitConcurrent) {
			break
		}
		s.Log.Warn("conflit concurrent pendant le rapprochement, nouvel essai",
			zap.String("reference", p.ReferenceExterne),
			zap.Int("essai", essai+1))
	}
	if err != nil {
		return nil, err
	}

	if s.Notif != nil {
		s.Notif.PaiementRapproche(p.PrestataireID, p.ReferenceExterne, res.MontantAffecte, res.MontantNonAffecte)
	}
	return res, nil
}

func (s *Service) rapprocherUneFois(p *paiement.Paiement) (*ResultatReconciliation, error) {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	// Garde anti-rejeu: la ligne de paiement s'insère dans la même
	// transaction que l'affectation, l'index unique fait foi.
	deja, err := s.Paiements.WithDB(tx).ExisteParReference(p.ReferenceExterne)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if deja {
		_ = tx.Rollback()
		return nil, ErrPaiementDejaTraite
	}

	ligne := paiement.Paiement{
		ReferenceExterne: p.ReferenceExterne,
		PrestataireID:    p.PrestataireID,
		Montant:          p.Montant,
		Statut:           p.Statut,
		Recu:             uuid.NewString(),
	}
	if err := s.Paiements.WithDB(tx).Create(&ligne); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPaiementDejaTraite
		}
		return nil, err
	}

	cfg, err := s.Config.Get(tx)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	impayees, err := s.Collectes.ListByPrestataire(tx, p.PrestataireID, true)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	res := &ResultatReconciliation{
		Recu:             ligne.Recu,
		ReferenceExterne: p.ReferenceExterne,
		MontantRecu:      p.Montant,
	}
	restant := p.Montant
	maintenant := time.Now()

	for i := range impayees {
		if restant <= 0 {
			break
		}
		col := &impayees[i]

		// Montant dû réel: toujours recalculé depuis les commandes et la
		// configuration courante, jamais depuis la valeur en cache.
		lot, err := s.Commandes.FindByIDs(tx, col.CommandeIDs)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		montantDu, partService, partCommission := CalculerMontant(lot, cfg)

		du := montantDu - col.MontantPaye
		if du < 0 {
			du = 0
		}
		aAppliquer := restant
		if du < aAppliquer {
			aAppliquer = du
		}
		if aAppliquer == 0 {
			continue
		}

		nouveauPaye := col.MontantPaye + aAppliquer
		devientPayee := nouveauPaye >= montantDu

		if err := s.Collectes.AppliquerPaiement(
			tx, col.ID,
			col.MontantPaye, nouveauPaye,
			devientPayee,
			montantDu, partService, partCommission,
			maintenant,
		); err != nil {
			_ = tx.Rollback()
			return nil, err
		}

		restant -= aAppliquer
		res.MontantAffecte += aAppliquer
		if devientPayee {
			res.CollectesSoldees = append(res.CollectesSoldees, col.ID)
		} else {
			res.CollectesPartielles = append(res.CollectesPartielles, col.ID)
		}
	}

	res.MontantNonAffecte = restant
	ligne.MontantAffecte = res.MontantAffecte
	ligne.MontantNonAffecte = res.MontantNonAffecte
	if err := s.Paiements.WithDB(tx).Update(&ligne); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if res.MontantNonAffecte > 0 {
		s.Log.Warn("paiement supérieur à la dette totale, surplus non affecté",
			zap.String("reference", p.ReferenceExterne),
			zap.Uint("prestataireId", p.PrestataireID),
			zap.Int64("surplus", res.MontantNonAffecte))
	}
	s.Log.Info("paiement rapproché",
		zap.String("reference", p.ReferenceExterne),
		zap.Uint("prestataireId", p.PrestataireID),
		zap.Int64("montantAffecte", res.MontantAffecte),
		zap.Int("collectesSoldees", len(res.CollectesSoldees)))

	return res, nil
}
