package collectefrais

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUneSeuleCollecteImpayeeParTuple(t *testing.T) {
	db := ouvrirDBTest(t)
	repo := NewRepository(db)

	premiere := &CollecteFrais{PrestataireID: 7, ChauffeurID: 3, Periode: "2024-03", MontantDu: 1000}
	require.NoError(t, repo.Sauvegarder(nil, premiere))

	// l'index unique partiel refuse une seconde collecte impayée du tuple
	err := repo.Sauvegarder(nil, &CollecteFrais{PrestataireID: 7, ChauffeurID: 3, Periode: "2024-03"})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// une autre période ou un autre chauffeur passent
	require.NoError(t, repo.Sauvegarder(nil, &CollecteFrais{PrestataireID: 7, ChauffeurID: 3, Periode: "2024-04"}))
	require.NoError(t, repo.Sauvegarder(nil, &CollecteFrais{PrestataireID: 7, ChauffeurID: 4, Periode: "2024-03"}))

	// une fois la première payée, le tuple peut rouvrir une collecte impayée
	maintenant := time.Now()
	require.NoError(t, repo.AppliquerPaiement(nil, premiere.ID, 0, 1000, true, 1000, 1000, 0, maintenant))
	require.NoError(t, repo.Sauvegarder(nil, &CollecteFrais{PrestataireID: 7, ChauffeurID: 3, Periode: "2024-03"}))
}

func TestAppliquerPaiementConflitSurLectureObsolete(t *testing.T) {
	db := ouvrirDBTest(t)
	repo := NewRepository(db)

	col := &CollecteFrais{PrestataireID: 7, ChauffeurID: 3, Periode: "2024-03", MontantDu: 1000}
	require.NoError(t, repo.Sauvegarder(nil, col))

	// un autre écrivain est passé: montant_paye lu à 0, réellement à 300
	require.NoError(t, repo.AppliquerPaiement(nil, col.ID, 0, 300, false, 0, 0, 0, time.Now()))

	err := repo.AppliquerPaiement(nil, col.ID, 0, 500, false, 0, 0, 0, time.Now())
	require.ErrorIs(t, err, ErrConflitConcurrent)

	apres, err := repo.FindByID(nil, col.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(300), apres.MontantPaye)
}
