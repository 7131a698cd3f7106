package collectefrais

import (
	"testing"
	"time"

	"github.com/Tapea/api-prestataire/internal/chauffeur"
	"github.com/Tapea/api-prestataire/internal/commande"
	"github.com/Tapea/api-prestataire/internal/configfrais"
	"github.com/Tapea/api-prestataire/internal/paiement"
	"github.com/google/uuid"
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
	// Base mémoire: une seule connexion, sinon chaque connexion du pool
	// verrait une base vide distincte.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, chauffeur.Migrate(db))
	require.NoError(t, commande.Migrate(db))
	require.NoError(t, configfrais.Migrate(db))
	require.NoError(t, Migrate(db))
	require.NoError(t, paiement.Migrate(db))
	return db
}

func nouveauServiceTest(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	return NewService(
		db,
		NewRepository(db),
		commande.NewRepository(db),
		chauffeur.NewRepository(db),
		configfrais.NewRepository(db),
		paiement.NewRepository(db),
		nil,
		zap.NewNop(),
	)
}

func poserConfig(t *testing.T, db *gorm.DB, service, commission float64) {
	t.Helper()
	require.NoError(t, db.Create(&configfrais.ConfigFrais{
		ID:                      configfrais.IDConfigActive,
		FraisServicePrestataire: service,
		CommissionPrestataire:   commission,
	}).Error)
}

func changerConfig(t *testing.T, db *gorm.DB, service, commission float64) {
	t.Helper()
	require.NoError(t, db.Model(&configfrais.ConfigFrais{}).
		Where("id = ?", configfrais.IDConfigActive).
		Updates(map[string]interface{}{
			"frais_service_prestataire": service,
			"commission_prestataire":    commission,
		}).Error)
}

func creerChauffeurTest(t *testing.T, db *gorm.DB, prestataireID *uint) *chauffeur.Chauffeur {
	t.Helper()
	typ := chauffeur.TypePrestataire
	if prestataireID == nil {
		typ = chauffeur.TypeSalarie
	}
	c := &chauffeur.Chauffeur{
		Nom:           "Durand",
		Prenom:        "Alex",
		Email:         uuid.NewString() + "@test.fr",
		Type:          typ,
		PrestataireID: prestataireID,
		Actif:         true,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func creerCommandeTerminee(t *testing.T, db *gorm.DB, chauffeurID *uint, prix int64, quand time.Time) *commande.Commande {
	t.Helper()
	c := &commande.Commande{
		ChauffeurID: chauffeurID,
		PrixTotal:   prix,
		Statut:      commande.StatutTerminee,
		TermineeLe:  &quand,
		CreatedAt:   quand,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func uintPtr(v uint) *uint { return &v }
