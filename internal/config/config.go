package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config regroupe les paramètres lus depuis l'environnement (.env / variables).
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	Env         string `mapstructure:"ENV"`
	DatabaseDSN string `mapstructure:"DATABASE_DSN"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	JWTIssuer   string `mapstructure:"JWT_ISSUER"`
	WebhookURL  string `mapstructure:"WEBHOOK_URL"`

	// Pourcentages initiaux de la configuration des frais, exigés au premier
	// démarrage (aucun défaut: jamais de repli silencieux sur 0%).
	FraisServicePrestataire string `mapstructure:"FRAIS_SERVICE_PRESTATAIRE"`
	CommissionPrestataire   string `mapstructure:"COMMISSION_PRESTATAIRE"`
	CommissionSalarieTapea  string `mapstructure:"COMMISSION_SALARIE_TAPEA"`
}

// Load lit la configuration. Les valeurs absentes reçoivent un défaut de dev.
func Load() Config {
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=tapea port=5432 sslmode=disable")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "tapea-api")
	viper.SetDefault("WEBHOOK_URL", "")
	viper.SetDefault("FRAIS_SERVICE_PRESTATAIRE", "")
	viper.SetDefault("COMMISSION_PRESTATAIRE", "")
	viper.SetDefault("COMMISSION_SALARIE_TAPEA", "")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Impossible de charger la configuration: %v", err)
	}
	return cfg
}
