package configfrais

import "fmt"

// MajConfigDTO est la commande de mise à jour partielle: chaque pourcentage
// est modifiable indépendamment, nil = inchangé.
type MajConfigDTO struct {
	FraisServicePrestataire *float64 `json:"fraisServicePrestataire"`
	CommissionPrestataire   *float64 `json:"commissionPrestataire"`
	CommissionSalarieTapea  *float64 `json:"commissionSalarieTapea"`
}

// Valider vérifie que chaque pourcentage fourni est dans [0,100].
func (d *MajConfigDTO) Valider() error {
	check := func(nom string, v *float64) error {
		if v != nil && (*v < 0 || *v > 100) {
			return fmt.Errorf("%s doit être compris entre 0 et 100", nom)
		}
		return nil
	}
	if err := check("fraisServicePrestataire", d.FraisServicePrestataire); err != nil {
		return err
	}
	if err := check("commissionPrestataire", d.CommissionPrestataire); err != nil {
		return err
	}
	return check("commissionSalarieTapea", d.CommissionSalarieTapea)
}
