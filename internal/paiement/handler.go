package paiement

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Tapea/api-prestataire/internal/auth"
	"github.com/gorilla/mux"
)

// Handler gère la consultation de l'historique des paiements.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// ListByPrestataire traite GET /prestataires/{id}/paiements
func (h *Handler) ListByPrestataire(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de prestataire invalide", http.StatusBadRequest)
		return
	}

	list, err := h.Repo.ListByPrestataire(uint(id))
	if err != nil {
		http.Error(w, "Erreur lors de la lecture des paiements", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// ListMoi traite GET /moi/paiements pour le prestataire connecté.
func (h *Handler) ListMoi(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.UserIDDepuisContexte(r.Context())
	if !ok {
		http.Error(w, "Non authentifié", http.StatusUnauthorized)
		return
	}

	list, err := h.Repo.ListByPrestataire(id)
	if err != nil {
		http.Error(w, "Erreur lors de la lecture des paiements", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
