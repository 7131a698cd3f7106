package commande_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Tapea/api-prestataire/internal/chauffeur"
	"github.com/Tapea/api-prestataire/internal/collectefrais"
	"github.com/Tapea/api-prestataire/internal/commande"
	"github.com/Tapea/api-prestataire/internal/configfrais"
	"github.com/Tapea/api-prestataire/internal/paiement"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func ouvrirDBTest(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, chauffeur.Migrate(db))
	require.NoError(t, commande.Migrate(db))
	require.NoError(t, configfrais.Migrate(db))
	require.NoError(t, collectefrais.Migrate(db))
	require.NoError(t, paiement.Migrate(db))
	return db
}

func routeurTerminer(db *gorm.DB) (*mux.Router, *commande.Repository) {
	repo := commande.NewRepository(db)
	service := collectefrais.NewService(
		db,
		collectefrais.NewRepository(db),
		repo,
		chauffeur.NewRepository(db),
		configfrais.NewRepository(db),
		paiement.NewRepository(db),
		nil,
		zap.NewNop(),
	)
	h := commande.NewHandler(repo, service)

	r := mux.NewRouter()
	r.HandleFunc("/commandes/{id}/terminer", h.Terminer).Methods("POST")
	return r, repo
}

func TestTerminerAtomiqueAvecLaCollecte(t *testing.T) {
	db := ouvrirDBTest(t)
	r, repo := routeurTerminer(db)

	prestataireID := uint(7)
	ch := &chauffeur.Chauffeur{
		Nom: "Durand", Prenom: "Alex", Email: "terminer@test.fr",
		Type: chauffeur.TypePrestataire, PrestataireID: &prestataireID, Actif: true,
	}
	require.NoError(t, db.Create(ch).Error)
	c := &commande.Commande{ChauffeurID: &ch.ID, PrixTotal: 10000, Statut: commande.StatutEnCours}
	require.NoError(t, db.Create(c).Error)

	url := fmt.Sprintf("/commandes/%d/terminer", c.ID)

	// sans configuration des frais, la clôture échoue entièrement:
	// la commande reste En cours, aucune collecte n'est créée
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", url, nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	relue, err := repo.FindByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, commande.StatutEnCours, relue.Statut)
	assert.Nil(t, relue.TermineeLe)

	var total int64
	require.NoError(t, db.Model(&collectefrais.CollecteFrais{}).Count(&total).Error)
	assert.Zero(t, total)

	// la configuration posée, le rejeu de la même clôture aboutit
	require.NoError(t, db.Create(&configfrais.ConfigFrais{
		ID:                      configfrais.IDConfigActive,
		FraisServicePrestataire: 10,
	}).Error)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", url, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	relue, err = repo.FindByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, commande.StatutTerminee, relue.Statut)
	require.NotNil(t, relue.TermineeLe)

	require.NoError(t, db.Model(&collectefrais.CollecteFrais{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestTerminerDejaTermineeRenvoieConflit(t *testing.T) {
	db := ouvrirDBTest(t)
	r, _ := routeurTerminer(db)

	require.NoError(t, db.Create(&configfrais.ConfigFrais{
		ID:                      configfrais.IDConfigActive,
		FraisServicePrestataire: 10,
	}).Error)

	c := &commande.Commande{PrixTotal: 5000, Statut: commande.StatutEnCours}
	require.NoError(t, db.Create(c).Error)
	url := fmt.Sprintf("/commandes/%d/terminer", c.ID)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", url, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", url, nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
