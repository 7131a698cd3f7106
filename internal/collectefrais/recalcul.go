package collectefrais

import (
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResumeRecalcul est le compte rendu d'une reconstruction complète.
type ResumeRecalcul struct {
	CollectesSupprimees  int64 `json:"collectesSupprimees"`
	CollectesCreees      int   `json:"collectesCreees"`
	CommandesTraitees    int   `json:"commandesTraitees"`
	CommandesIgnorees    int   `json:"commandesIgnorees"`
	CommandesDejaReglees int   `json:"commandesDejaReglees"`
	MontantTotal         int64 `json:"montantTotal"`
}

type tupleCollecte struct {
	prestataireID uint
	chauffeurID   uint
	periode       string
}

// Reconstruire efface toutes les collectes impayées et les régénère depuis
// le registre des commandes et la configuration courante. Idempotent: deux
// exécutions consécutives sans nouvelle commande ni changement de
// configuration produisent des collectes identiques. Les collectes payées ne
// sont jamais touchées, et leurs commandes ne sont jamais refacturées.
func (s *Service) Reconstruire() (*ResumeRecalcul, error) {
	resume := &ResumeRecalcul{}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Lue dans la transaction: la reconstruction entière est tarifée sur
		// un seul état de la configuration.
		cfg, err := s.Config.Get(tx)
		if err != nil {
			return err
		}

		// Commandes déjà figées dans une collecte payée: exclues du rescan.
		payees, err := s.Collectes.ListPayees(tx)
		if err != nil {
			return err
		}
		figees := make(map[uint]struct{})
		for i := range payees {
			for _, id := range payees[i].CommandeIDs {
				figees[id] = struct{}{}
			}
		}

		supprimees, err := s.Collectes.SupprimerImpayees(tx)
		if err != nil {
			return err
		}
		resume.CollectesSupprimees = supprimees

		terminees, err := s.Commandes.ListTerminees(tx)
		if err != nil {
			return err
		}

		prestataireParChauffeur := make(map[uint]*uint)
		groupes := make(map[tupleCollecte][]uint)
		ordre := make([]tupleCollecte, 0)

		for i := range terminees {
			cmd := &terminees[i]
			if _, ok := figees[cmd.ID]; ok {
				resume.CommandesDejaReglees++
				continue
			}
			if cmd.ChauffeurID == nil {
				resume.CommandesIgnorees++
				continue
			}

			prestataireID, ok := prestataireParChauffeur[*cmd.ChauffeurID]
			if !ok {
				prestataireID, err = s.Chauffeurs.PrestataireDuChauffeur(tx, *cmd.ChauffeurID)
				if err != nil {
					return err
				}
				prestataireParChauffeur[*cmd.ChauffeurID] = prestataireID
			}
			if prestataireID == nil {
				resume.CommandesIgnorees++
				s.Log.Debug("chauffeur sans prestataire, commande ignorée au recalcul",
					zap.Uint("commandeId", cmd.ID),
					zap.Uint("chauffeurId", *cmd.ChauffeurID))
				continue
			}

			t := tupleCollecte{
				prestataireID: *prestataireID,
				chauffeurID:   *cmd.ChauffeurID,
				periode:       Periode(cmd.CreatedAt),
			}
			if _, ok := groupes[t]; !ok {
				ordre = append(ordre, t)
			}
			groupes[t] = append(groupes[t], cmd.ID)
			resume.CommandesTraitees++
		}

		for _, t := range ordre {
			ids := groupes[t]
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

			lot, err := s.Commandes.FindByIDs(tx, ids)
			if err != nil {
				return err
			}
			montantDu, partService, partCommission := CalculerMontant(lot, cfg)

			col := &CollecteFrais{
				PrestataireID:    t.prestataireID,
				ChauffeurID:      t.chauffeurID,
				Periode:          t.periode,
				MontantDu:        montantDu,
				PartFraisService: partService,
				PartCommission:   partCommission,
				MontantPaye:      0,
				CommandeIDs:      ids,
			}
			if err := s.Collectes.Sauvegarder(tx, col); err != nil {
				return err
			}
			resume.CollectesCreees++
			resume.MontantTotal += montantDu
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("reconstruction des collectes terminée",
		zap.Int("collectesCreees", resume.CollectesCreees),
		zap.Int("commandesTraitees", resume.CommandesTraitees),
		zap.Int("commandesIgnorees", resume.CommandesIgnorees),
		zap.Int64("montantTotal", resume.MontantTotal))

	return resume, nil
}
