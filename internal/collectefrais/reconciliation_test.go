package collectefrais

import (
	"testing"
	"time"

	"github.com/Tapea/api-prestataire/internal/paiement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func paiementConfirme(ref string, prestataireID uint, montant int64) *paiement.Paiement {
	return &paiement.Paiement{
		ReferenceExterne: ref,
		PrestataireID:    prestataireID,
		Montant:          montant,
		Statut:           paiement.StatutConfirme,
	}
}

// Prépare deux collectes impayées pour le prestataire 7:
// janvier dû 1000, février dû 2000 (service 10%, commission 0%).
func preparerDeuxPeriodes(t *testing.T, s *Service) (janvier, fevrier *CollecteFrais) {
	t.Helper()
	db := s.DB
	poserConfig(t, db, 10, 0)

	ch := creerChauffeurTest(t, db, uintPtr(7))
	c1 := creerCommandeTerminee(t, db, &ch.ID, 10000,
		time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC))
	c2 := creerCommandeTerminee(t, db, &ch.ID, 20000,
		time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC))

	require.NoError(t, s.EnregistrerCommande(nil, c1.ID))
	require.NoError(t, s.EnregistrerCommande(nil, c2.ID))

	var err error
	janvier, err = s.Collectes.FindImpayee(nil, 7, ch.ID, "2024-01")
	require.NoError(t, err)
	require.NotNil(t, janvier)
	fevrier, err = s.Collectes.FindImpayee(nil, 7, ch.ID, "2024-02")
	require.NoError(t, err)
	require.NotNil(t, fevrier)
	return janvier, fevrier
}

func TestRapprocherDetteLaPlusAncienneDabord(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)
	janvier, fevrier := preparerDeuxPeriodes(t, s)

	res, err := s.Rapprocher(paiementConfirme("pay-001", 7, 1500))
	require.NoError(t, err)
	assert.Equal(t, int64(1500), res.MontantAffecte)
	assert.Zero(t, res.MontantNonAffecte)
	assert.Equal(t, []uint{janvier.ID}, res.CollectesSoldees)
	assert.Equal(t, []uint{fevrier.ID}, res.CollectesPartielles)

	apres, err := s.Collectes.FindByID(nil, janvier.ID)
	require.NoError(t, err)
	assert.True(t, apres.EstPayee)
	assert.Equal(t, int64(1000), apres.MontantPaye)
	assert.Equal(t, int64(1000), apres.MontantDu)
	require.NotNil(t, apres.PayeeLe)

	apres, err = s.Collectes.FindByID(nil, fevrier.ID)
	require.NoError(t, err)
	assert.False(t, apres.EstPayee)
	assert.Equal(t, int64(500), apres.MontantPaye)
	assert.Nil(t, apres.PayeeLe)
}

func TestRapprocherReferenceDupliqueeRejetee(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)
	janvier, _ := preparerDeuxPeriodes(t, s)

	_, err := s.Rapprocher(paiementConfirme("pay-002", 7, 500))
	require.NoError(t, err)

	// rejeu de la même référence: refusé, rien n'est réappliqué
	_, err = s.Rapprocher(paiementConfirme("pay-002", 7, 500))
	require.ErrorIs(t, err, ErrPaiementDejaTraite)

	apres, err := s.Collectes.FindByID(nil, janvier.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), apres.MontantPaye)
}

func TestRapprocherPaiementNonConfirmeRejete(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)
	janvier, _ := preparerDeuxPeriodes(t, s)

	_, err := s.Rapprocher(&paiement.Paiement{
		ReferenceExterne: "pay-003",
		PrestataireID:    7,
		Montant:          500,
		Statut:           paiement.StatutEchoue,
	})
	require.ErrorIs(t, err, ErrPaiementNonConfirme)

	// aucun état muté
	apres, err := s.Collectes.FindByID(nil, janvier.ID)
	require.NoError(t, err)
	assert.Zero(t, apres.MontantPaye)

	var lignes int64
	require.NoError(t, db.Model(&paiement.Paiement{}).Count(&lignes).Error)
	assert.Zero(t, lignes)
}

func TestRapprocherMontantInvalideRejete(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)
	preparerDeuxPeriodes(t, s)

	_, err := s.Rapprocher(paiementConfirme("pay-004", 7, 0))
	require.ErrorIs(t, err, ErrMontantInvalide)
	_, err = s.Rapprocher(paiementConfirme("pay-005", 7, -100))
	require.ErrorIs(t, err, ErrMontantInvalide)
}

func TestRapprocherSurplusNonAffecte(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)
	preparerDeuxPeriodes(t, s)

	// dette totale 3000, paiement 5000: le surplus est signalé, jamais crédité
	res, err := s.Rapprocher(paiementConfirme("pay-006", 7, 5000))
	require.NoError(t, err)
	assert.Equal(t, int64(3000), res.MontantAffecte)
	assert.Equal(t, int64(2000), res.MontantNonAffecte)
	assert.Len(t, res.CollectesSoldees, 2)
	assert.Empty(t, res.CollectesPartielles)

	impayees, err := s.Collectes.ListByPrestataire(nil, 7, true)
	require.NoError(t, err)
	assert.Empty(t, impayees)
}

func TestRapprocherRecalculeLeDuReel(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)
	janvier, _ := preparerDeuxPeriodes(t, s)

	// le pourcentage double après l'agrégation: le rapprochement doit
	// affecter le dû recalculé (2000), pas la valeur en cache (1000)
	changerConfig(t, db, 20, 0)

	res, err := s.Rapprocher(paiementConfirme("pay-007", 7, 2000))
	require.NoError(t, err)
	assert.Equal(t, []uint{janvier.ID}, res.CollectesSoldees)

	apres, err := s.Collectes.FindByID(nil, janvier.ID)
	require.NoError(t, err)
	assert.True(t, apres.EstPayee)
	assert.Equal(t, int64(2000), apres.MontantDu)
	assert.Equal(t, int64(2000), apres.MontantPaye)
}

func TestCollectePayeeFigee(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)
	poserConfig(t, db, 15, 5)

	ch := creerChauffeurTest(t, db, uintPtr(7))
	cmd := creerCommandeTerminee(t, db, &ch.ID, 10000,
		time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, s.EnregistrerCommande(nil, cmd.ID))

	res, err := s.Rapprocher(paiementConfirme("pay-008", 7, 2000))
	require.NoError(t, err)
	require.Len(t, res.CollectesSoldees, 1)
	colID := res.CollectesSoldees[0]

	// le pourcentage change: la collecte payée reste à 2000, figée
	changerConfig(t, db, 20, 5)

	list, err := s.ListerAvecMontantsCourants(7, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, colID, list[0].ID)
	assert.True(t, list[0].EstPayee)
	assert.Equal(t, int64(2000), list[0].MontantDu)
	assert.Equal(t, int64(1500), list[0].PartFraisService)
	assert.Equal(t, int64(500), list[0].PartCommission)
	require.NotNil(t, list[0].PayeeLe)
}

// simulerConflits fait échouer la garde compare-and-set des n prochaines
// écritures de collecte: juste avant l'UPDATE gardé, montant_paye est bougé
// sur la même connexion, comme le ferait un écrivain concurrent.
func simulerConflits(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	compteur := 0
	err := db.Callback().Update().Before("gorm:update").Register("test:conflit_collecte", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Model.(*CollecteFrais); !ok {
			return
		}
		if compteur >= n {
			return
		}
		compteur++
		if _, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"UPDATE collecte_frais SET montant_paye = montant_paye + 1 WHERE est_payee = 0"); err != nil {
			t.Errorf("échec de la simulation de conflit: %v", err)
		}
	})
	require.NoError(t, err)
}

func TestRapprocherRejoueApresConflit(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)
	janvier, _ := preparerDeuxPeriodes(t, s)

	// un seul conflit: la première tentative échoue, le rejeu aboutit
	simulerConflits(t, db, 1)

	res, err := s.Rapprocher(paiementConfirme("pay-011", 7, 1000))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), res.MontantAffecte)

	apres, err := s.Collectes.FindByID(nil, janvier.ID)
	require.NoError(t, err)
	assert.True(t, apres.EstPayee)
	assert.Equal(t, int64(1000), apres.MontantPaye)
}

func TestRapprocherEpuiseLesEssais(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)
	janvier, _ := preparerDeuxPeriodes(t, s)

	// conflit à chaque tentative: l'erreur remonte après épuisement des essais
	simulerConflits(t, db, essaisTransaction)

	_, err := s.Rapprocher(paiementConfirme("pay-012", 7, 1000))
	require.ErrorIs(t, err, ErrConflitConcurrent)

	// tout est annulé, ligne de paiement comprise
	var lignes int64
	require.NoError(t, db.Model(&paiement.Paiement{}).Count(&lignes).Error)
	assert.Zero(t, lignes)

	apres, err := s.Collectes.FindByID(nil, janvier.ID)
	require.NoError(t, err)
	assert.False(t, apres.EstPayee)
	assert.Zero(t, apres.MontantPaye)
}

func TestRapprocherPaiementsSuccessifs(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)
	janvier, fevrier := preparerDeuxPeriodes(t, s)

	_, err := s.Rapprocher(paiementConfirme("pay-009", 7, 400))
	require.NoError(t, err)
	_, err = s.Rapprocher(paiementConfirme("pay-010", 7, 600))
	require.NoError(t, err)

	apres, err := s.Collectes.FindByID(nil, janvier.ID)
	require.NoError(t, err)
	assert.True(t, apres.EstPayee)
	assert.Equal(t, int64(1000), apres.MontantPaye)

	apres, err = s.Collectes.FindByID(nil, fevrier.ID)
	require.NoError(t, err)
	assert.False(t, apres.EstPayee)
	assert.Zero(t, apres.MontantPaye)
}
