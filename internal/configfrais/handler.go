package configfrais

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Handler gère les routes de configuration des frais.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Get traite GET /config-frais
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Repo.Get(nil)
	if err != nil {
		if errors.Is(err, ErrConfigAbsente) {
			http.Error(w, "Configuration des frais absente", http.StatusNotFound)
			return
		}
		http.Error(w, "Erreur lors de la lecture de la configuration", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(cfg)
}

// Update traite PUT /config-frais
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var dto MajConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formé", http.StatusBadRequest)
		return
	}
	if err := dto.Valider(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg, err := h.Repo.Appliquer(&dto)
	if err != nil {
		if errors.Is(err, ErrConfigAbsente) {
			http.Error(w, "Configuration des frais absente", http.StatusNotFound)
			return
		}
		http.Error(w, "Erreur lors de la mise à jour de la configuration", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(cfg)
}
