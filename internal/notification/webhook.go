package notification

import (
	"bytes"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Webhook pousse les événements de règlement vers une URL externe
// (tableau de bord, canal d'alerte interne). Best effort: un échec est
// journalisé, jamais propagé au rapprochement.
type Webhook struct {
	URL string
	Log *zap.Logger
}

func NewWebhook(url string, log *zap.Logger) *Webhook {
	if log == nil {
		log = zap.NewNop()
	}
	return &Webhook{URL: url, Log: log}
}

// PaiementRapproche notifie qu'un paiement prestataire a été rapproché.
func (n *Webhook) PaiementRapproche(prestataireID uint, reference string, montantAffecte, montantNonAffecte int64) {
	if n.URL == "" {
		return
	}

	payload := map[string]interface{}{
		"evenement":         "paiement_rapproche",
		"prestataireId":     prestataireID,
		"reference":         reference,
		"montantAffecte":    montantAffecte,
		"montantNonAffecte": montantNonAffecte,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(n.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		n.Log.Warn("échec de l'envoi du webhook de règlement",
			zap.String("reference", reference),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()
}
