package commentaire

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Tapea/api-prestataire/internal/auth"
	"github.com/gorilla/mux"
)

// Handler gère les routes commentaire.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// CreerPourPrestataire traite POST /prestataires/{id}/commentaires
func (h *Handler) CreerPourPrestataire(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de prestataire invalide", http.StatusBadRequest)
		return
	}
	adminID, ok := auth.UserIDDepuisContexte(r.Context())
	if !ok {
		http.Error(w, "Non authentifié", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Texte string `json:"texte"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formé", http.StatusBadRequest)
		return
	}
	if payload.Texte == "" {
		http.Error(w, "Texte obligatoire", http.StatusBadRequest)
		return
	}

	c := Commentaire{
		PrestataireID:    uint(id),
		AdministrateurID: adminID,
		Texte:            payload.Texte,
	}
	if err := h.Repo.Create(&c); err != nil {
		http.Error(w, "Erreur lors de la création du commentaire", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// ListerPourPrestataire traite GET /prestataires/{id}/commentaires
func (h *Handler) ListerPourPrestataire(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de prestataire invalide", http.StatusBadRequest)
		return
	}

	list, err := h.Repo.ListByPrestataire(uint(id))
	if err != nil {
		http.Error(w, "Erreur lors de la lecture des commentaires", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Supprimer traite DELETE /commentaires/{id}
func (h *Handler) Supprimer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de commentaire invalide", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		http.Error(w, "Erreur lors de la suppression du commentaire", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
