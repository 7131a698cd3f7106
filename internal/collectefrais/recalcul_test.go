package collectefrais

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstruireRegroupeParTuple(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)
	poserConfig(t, db, 10, 5)

	ch1 := creerChauffeurTest(t, db, uintPtr(7))
	ch2 := creerChauffeurTest(t, db, uintPtr(8))
	salarie := creerChauffeurTest(t, db, nil)

	mars := time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)
	avril := time.Date(2024, 4, 3, 9, 0, 0, 0, time.UTC)

	creerCommandeTerminee(t, db, &ch1.ID, 10000, mars)
	creerCommandeTerminee(t, db, &ch1.ID, 5000, mars)
	creerCommandeTerminee(t, db, &ch1.ID, 5000, avril)
	creerCommandeTerminee(t, db, &ch2.ID, 8000, mars)
	creerCommandeTerminee(t, db, &salarie.ID, 9000, mars)
	creerCommandeTerminee(t, db, nil, 4000, mars)

	resume, err := s.Reconstruire()
	require.NoError(t, err)
	assert.Equal(t, 3, resume.CollectesCreees)
	assert.Equal(t, 4, resume.CommandesTraitees)
	assert.Equal(t, 2, resume.CommandesIgnorees)
	assert.Zero(t, resume.CommandesDejaReglees)
	// 15% de (10000+5000) + 15% de 5000 + 15% de 8000
	assert.Equal(t, int64(2250+750+1200), resume.MontantTotal)

	col, err := s.Collectes.FindImpayee(nil, 7, ch1.ID, "2024-03")
	require.NoError(t, err)
	require.NotNil(t, col)
	assert.Equal(t, int64(2250), col.MontantDu)
	assert.Zero(t, col.MontantPaye)
	assert.Len(t, col.CommandeIDs, 2)
}

func TestReconstruireIdempotent(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)
	poserConfig(t, db, 10, 5)

	ch := creerChauffeurTest(t, db, uintPtr(7))
	mars := time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)
	creerCommandeTerminee(t, db, &ch.ID, 10000, mars)
	creerCommandeTerminee(t, db, &ch.ID, 5000, mars)

	r1, err := s.Reconstruire()
	require.NoError(t, err)
	avant, err := s.Collectes.ListByPrestataire(nil, 7, true)
	require.NoError(t, err)

	r2, err := s.Reconstruire()
	require.NoError(t, err)
	apres, err := s.Collectes.ListByPrestataire(nil, 7, true)
	require.NoError(t, err)

	assert.Equal(t, r1.CollectesCreees, r2.CollectesCreees)
	assert.Equal(t, r1.MontantTotal, r2.MontantTotal)
	require.Len(t, apres, len(avant))
	for i := range avant {
		assert.Equal(t, avant[i].Periode, apres[i].Periode)
		assert.Equal(t, avant[i].MontantDu, apres[i].MontantDu)
		assert.Equal(t, avant[i].PartFraisService, apres[i].PartFraisService)
		assert.Equal(t, avant[i].PartCommission, apres[i].PartCommission)
		assert.Equal(t, avant[i].CommandeIDs, apres[i].CommandeIDs)
		assert.Zero(t, apres[i].MontantPaye)
	}
}

func TestReconstruireNeToucheJamaisAuxPayees(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)
	poserConfig(t, db, 10, 0)

	ch := creerChauffeurTest(t, db, uintPtr(7))
	mars := time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)
	reglee := creerCommandeTerminee(t, db, &ch.ID, 10000, mars)

	require.NoError(t, s.EnregistrerCommande(nil, reglee.ID))
	_, err := s.Rapprocher(paiementConfirme("pay-100", 7, 1000))
	require.NoError(t, err)

	// nouvelle commande sur la même période, puis reconstruction
	creerCommandeTerminee(t, db, &ch.ID, 6000, mars.Add(24*time.Hour))

	resume, err := s.Reconstruire()
	require.NoError(t, err)
	assert.Equal(t, 1, resume.CollectesCreees)
	assert.Equal(t, 1, resume.CommandesTraitees)
	assert.Equal(t, 1, resume.CommandesDejaReglees)

	toutes, err := s.Collectes.ListByPrestataire(nil, 7, false)
	require.NoError(t, err)
	require.Len(t, toutes, 2)

	var payee, impayee *CollecteFrais
	for i := range toutes {
		if toutes[i].EstPayee {
			payee = &toutes[i]
		} else {
			impayee = &toutes[i]
		}
	}
	require.NotNil(t, payee)
	require.NotNil(t, impayee)

	// l'historique payé est intact, la commande réglée n'est pas refacturée
	assert.Equal(t, int64(1000), payee.MontantDu)
	assert.Equal(t, []uint{reglee.ID}, payee.CommandeIDs)
	assert.Equal(t, int64(600), impayee.MontantDu)
	assert.NotContains(t, impayee.CommandeIDs, reglee.ID)
}

func TestReconstruirePasDeDoubleFacturation(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)
	poserConfig(t, db, 10, 5)

	ch := creerChauffeurTest(t, db, uintPtr(7))
	mars := time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)
	c1 := creerCommandeTerminee(t, db, &ch.ID, 10000, mars)
	c2 := creerCommandeTerminee(t, db, &ch.ID, 5000, mars)

	// agrégation incrémentale puis reconstructions successives
	require.NoError(t, s.EnregistrerCommande(nil, c1.ID))
	_, err := s.Reconstruire()
	require.NoError(t, err)
	_, err = s.Reconstruire()
	require.NoError(t, err)

	toutes, err := s.Collectes.ListByPrestataire(nil, 7, false)
	require.NoError(t, err)

	vues := map[uint]int{}
	for i := range toutes {
		for _, id := range toutes[i].CommandeIDs {
			vues[id]++
		}
	}
	assert.Equal(t, 1, vues[c1.ID])
	assert.Equal(t, 1, vues[c2.ID])
}

func TestReconstruireSansConfigEchoue(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)

	_, err := s.Reconstruire()
	require.Error(t, err)
}

func TestReconstruireAppliqueLaConfigCourante(t *testing.T) {
	db := ouvrirDBTest(t)
	s := nouveauServiceTest(t, db)
	poserConfig(t, db, 10, 0)

	ch := creerChauffeurTest(t, db, uintPtr(7))
	mars := time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)
	creerCommandeTerminee(t, db, &ch.ID, 10000, mars)

	r1, err := s.Reconstruire()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), r1.MontantTotal)

	changerConfig(t, db, 20, 0)
	r2, err := s.Reconstruire()
	require.NoError(t, err)
	assert.Equal(t, int64(2000), r2.MontantTotal)
}
