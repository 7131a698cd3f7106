package prestataire

// CreerPrestataireDTO est le corps de POST /prestataires.
type CreerPrestataireDTO struct {
	Nom        string `json:"nom"`
	SIRET      string `json:"siret"`
	Email      string `json:"email"`
	Telephone  string `json:"telephone"`
	Logo       string `json:"logo"`
	MotDePasse string `json:"motDePasse"`
}

// ConnexionDTO est le corps de POST /connexion.
type ConnexionDTO struct {
	Email      string `json:"email"`
	MotDePasse string `json:"motDePasse"`
}

// ResumePrestataireDTO porte les principales métriques d'un prestataire
// pour le tableau de bord admin.
type ResumePrestataireDTO struct {
	ID               uint   `json:"id"`
	Nom              string `json:"nom"`
	SIRET            string `json:"siret"`
	Email            string `json:"email"`
	Telephone        string `json:"telephone"`
	Logo             string `json:"logo"`
	ChauffeursActifs int    `json:"chauffeursActifs"`
	MontantImpaye    int64  `json:"montantImpaye"`
	MontantRegle     int64  `json:"montantRegle"`
}
