package collectefrais

// RapprocherPaiementDTO est la confirmation d'encaissement transmise après
// succès côté processeur de paiement. Le moteur ne capture rien lui-même:
// il ne fait que rapprocher un montant déjà encaissé.
type RapprocherPaiementDTO struct {
	ReferenceExterne string `json:"referenceExterne"`
	Montant          int64  `json:"montant"`
	Statut           string `json:"statut"`
}
