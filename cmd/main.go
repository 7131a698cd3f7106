package main

import (
	"errors"
	"net/http"

	"github.com/Tapea/api-prestataire/internal/administrateur"
	"github.com/Tapea/api-prestataire/internal/auth"
	"github.com/Tapea/api-prestataire/internal/chauffeur"
	"github.com/Tapea/api-prestataire/internal/client"
	"github.com/Tapea/api-prestataire/internal/collectefrais"
	"github.com/Tapea/api-prestataire/internal/commande"
	"github.com/Tapea/api-prestataire/internal/commentaire"
	"github.com/Tapea/api-prestataire/internal/config"
	"github.com/Tapea/api-prestataire/internal/configfrais"
	"github.com/Tapea/api-prestataire/internal/logger"
	"github.com/Tapea/api-prestataire/internal/notification"
	"github.com/Tapea/api-prestataire/internal/paiement"
	"github.com/Tapea/api-prestataire/internal/prestataire"
	"github.com/Tapea/api-prestataire/internal/tarif"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger.Init(cfg.Env)
	log := logger.L()
	defer func() { _ = log.Sync() }()

	if err := auth.Configure(cfg.JWTSecret, cfg.JWTIssuer); err != nil {
		log.Fatal("Configuration auth invalide", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Erreur de connexion à la base", zap.Error(err))
	}

	// Migrations, parents avant enfants
	migrations := []func(*gorm.DB) error{
		administrateur.Migrate,
		prestataire.Migrate,
		chauffeur.Migrate,
		client.Migrate,
		tarif.Migrate,
		commande.Migrate,
		commentaire.Migrate,
		configfrais.Migrate,
		collectefrais.Migrate,
		paiement.Migrate,
	}
	for _, migrate := range migrations {
		if err := migrate(db); err != nil {
			log.Fatal("Erreur lors de la migration du schéma", zap.Error(err))
		}
	}

	// Repositories
	adminRepo := administrateur.NewRepository(db)
	prestataireRepo := prestataire.NewRepository(db)
	chauffeurRepo := chauffeur.NewRepository(db)
	clientRepo := client.NewRepository(db)
	tarifRepo := tarif.NewRepository(db)
	commandeRepo := commande.NewRepository(db)
	commentaireRepo := commentaire.NewRepository(db)
	configRepo := configfrais.NewRepository(db)
	collecteRepo := collectefrais.NewRepository(db)
	paiementRepo := paiement.NewRepository(db)

	// Premier démarrage: la configuration des frais vient de l'environnement,
	// jamais d'un défaut à 0% qui sous-facturerait en silence.
	if _, err := configRepo.Get(nil); err != nil {
		if !errors.Is(err, configfrais.ErrConfigAbsente) {
			log.Fatal("Erreur lors de la lecture de la configuration des frais", zap.Error(err))
		}
		initiale, err := configfrais.DepuisEnv(
			cfg.FraisServicePrestataire, cfg.CommissionPrestataire, cfg.CommissionSalarieTapea,
		)
		if err != nil {
			log.Fatal("Configuration des frais absente et non fournie par l'environnement", zap.Error(err))
		}
		if err := configRepo.Seed(*initiale); err != nil {
			log.Fatal("Erreur lors de l'initialisation de la configuration des frais", zap.Error(err))
		}
	}

	// Moteur de collecte
	webhook := notification.NewWebhook(cfg.WebhookURL, log)
	collecteService := collectefrais.NewService(
		db, collecteRepo, commandeRepo, chauffeurRepo, configRepo, paiementRepo, webhook, log,
	)

	// Handlers
	adminHandler := administrateur.NewHandler(adminRepo)
	prestataireHandler := prestataire.NewHandler(prestataireRepo, chauffeurRepo, collecteService)
	chauffeurHandler := chauffeur.NewHandler(chauffeurRepo)
	clientHandler := client.NewHandler(clientRepo)
	tarifHandler := tarif.NewHandler(tarifRepo)
	commandeHandler := commande.NewHandler(commandeRepo, collecteService)
	commentaireHandler := commentaire.NewHandler(commentaireRepo)
	paiementHandler := paiement.NewHandler(paiementRepo)
	configHandler := configfrais.NewHandler(configRepo)
	collecteHandler := collectefrais.NewHandler(collecteService)

	// Router
	r := mux.NewRouter()

	// Connexions (publiques)
	r.HandleFunc("/connexion", prestataireHandler.Connexion).Methods("POST")
	r.HandleFunc("/admin/connexion", adminHandler.Connexion).Methods("POST")

	// Portail prestataire (token requis)
	portail := r.PathPrefix("/moi").Subrouter()
	portail.Use(auth.MiddlewareAuthentification)
	portail.HandleFunc("/collectes", collecteHandler.ListMoi).Methods("GET")
	portail.HandleFunc("/paiements", collecteHandler.PayerMoi).Methods("POST")
	portail.HandleFunc("/paiements", paiementHandler.ListMoi).Methods("GET")

	// Back-office (token admin requis)
	admin := r.PathPrefix("/").Subrouter()
	admin.Use(auth.MiddlewareAuthentification, auth.ExigerAdmin)

	// Routes administrateurs
	admin.HandleFunc("/admin/administrateurs", adminHandler.Creer).Methods("POST")
	admin.HandleFunc("/admin/administrateurs", adminHandler.Lister).Methods("GET")

	// Routes prestataires
	admin.HandleFunc("/prestataires", prestataireHandler.Creer).Methods("POST")
	admin.HandleFunc("/prestataires", prestataireHandler.Lister).Methods("GET")
	admin.HandleFunc("/prestataires/{id}", prestataireHandler.Get).Methods("GET")
	admin.HandleFunc("/prestataires/{id}", prestataireHandler.MettreAJour).Methods("PUT")
	admin.HandleFunc("/prestataires/{id}", prestataireHandler.Supprimer).Methods("DELETE")
	admin.HandleFunc("/prestataires/{id}/resume", prestataireHandler.Resume).Methods("GET")

	// Routes chauffeurs
	admin.HandleFunc("/chauffeurs", chauffeurHandler.Creer).Methods("POST")
	admin.HandleFunc("/chauffeurs", chauffeurHandler.Lister).Methods("GET")
	admin.HandleFunc("/chauffeurs/{id}", chauffeurHandler.Get).Methods("GET")
	admin.HandleFunc("/chauffeurs/{id}", chauffeurHandler.MettreAJour).Methods("PUT")
	admin.HandleFunc("/chauffeurs/{id}", chauffeurHandler.Supprimer).Methods("DELETE")

	// Routes clients
	admin.HandleFunc("/clients", clientHandler.Creer).Methods("POST")
	admin.HandleFunc("/clients", clientHandler.Lister).Methods("GET")
	admin.HandleFunc("/clients/{id}", clientHandler.Get).Methods("GET")
	admin.HandleFunc("/clients/{id}", clientHandler.MettreAJour).Methods("PUT")
	admin.HandleFunc("/clients/{id}", clientHandler.Supprimer).Methods("DELETE")

	// Routes tarifs
	admin.HandleFunc("/tarifs", tarifHandler.Creer).Methods("POST")
	admin.HandleFunc("/tarifs", tarifHandler.Lister).Methods("GET")
	admin.HandleFunc("/tarifs/{id}", tarifHandler.Get).Methods("GET")
	admin.HandleFunc("/tarifs/{id}", tarifHandler.MettreAJour).Methods("PUT")
	admin.HandleFunc("/tarifs/{id}", tarifHandler.Supprimer).Methods("DELETE")

	// Routes commandes
	admin.HandleFunc("/commandes", commandeHandler.Creer).Methods("POST")
	admin.HandleFunc("/commandes", commandeHandler.Lister).Methods("GET")
	admin.HandleFunc("/commandes/{id}", commandeHandler.Get).Methods("GET")
	admin.HandleFunc("/commandes/{id}", commandeHandler.Supprimer).Methods("DELETE")
	admin.HandleFunc("/commandes/{id}/terminer", commandeHandler.Terminer).Methods("POST")
	admin.HandleFunc("/commandes/{id}/annuler", commandeHandler.Annuler).Methods("POST")

	// Routes commentaires
	admin.HandleFunc("/prestataires/{id}/commentaires", commentaireHandler.CreerPourPrestataire).Methods("POST")
	admin.HandleFunc("/prestataires/{id}/commentaires", commentaireHandler.ListerPourPrestataire).Methods("GET")
	admin.HandleFunc("/commentaires/{id}", commentaireHandler.Supprimer).Methods("DELETE")

	// Routes configuration des frais
	admin.HandleFunc("/config-frais", configHandler.Get).Methods("GET")
	admin.HandleFunc("/config-frais", configHandler.Update).Methods("PUT")

	// Routes collectes de frais
	admin.HandleFunc("/collectes/recalcul", collecteHandler.Recalculer).Methods("POST")
	admin.HandleFunc("/collectes/{id}", collecteHandler.Get).Methods("GET")
	admin.HandleFunc("/prestataires/{id}/collectes", collecteHandler.ListByPrestataire).Methods("GET")
	admin.HandleFunc("/prestataires/{id}/paiements", collecteHandler.PayerPourPrestataire).Methods("POST")
	admin.HandleFunc("/prestataires/{id}/paiements", paiementHandler.ListByPrestataire).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	log.Info("Serveur démarré", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, handler); err != nil {
		log.Fatal("Arrêt du serveur", zap.Error(err))
	}
}
