package tarif

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Handler gère les routes tarif.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Creer traite POST /tarifs
func (h *Handler) Creer(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var t Tarif
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, "JSON mal formé", http.StatusBadRequest)
		return
	}
	if t.Nom == "" {
		http.Error(w, "Nom de tarif obligatoire", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Create(&t); err != nil {
		http.Error(w, "Erreur lors de la création du tarif", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(t)
}

// Lister traite GET /tarifs[?actifs=true]
func (h *Handler) Lister(w http.ResponseWriter, r *http.Request) {
	var (
		list []Tarif
		err  error
	)
	if r.URL.Query().Get("actifs") == "true" {
		list, err = h.Repo.ListActifs()
	} else {
		list, err = h.Repo.ListAll()
	}
	if err != nil {
		http.Error(w, "Erreur lors de la lecture des tarifs", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Get traite GET /tarifs/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de tarif invalide", http.StatusBadRequest)
		return
	}

	t, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Tarif introuvable", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(t)
}

// MettreAJour traite PUT /tarifs/{id}
func (h *Handler) MettreAJour(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de tarif invalide", http.StatusBadRequest)
		return
	}

	existant, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Tarif introuvable", http.StatusNotFound)
		return
	}

	var payload Tarif
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formé", http.StatusBadRequest)
		return
	}

	existant.Nom = payload.Nom
	existant.PriseEnCharge = payload.PriseEnCharge
	existant.PrixParKm = payload.PrixParKm
	existant.PrixParMinute = payload.PrixParMinute
	existant.MontantMinimum = payload.MontantMinimum
	existant.Actif = payload.Actif

	if err := h.Repo.Update(existant); err != nil {
		http.Error(w, "Erreur lors de la mise à jour du tarif", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existant)
}

// Supprimer traite DELETE /tarifs/{id}
func (h *Handler) Supprimer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de tarif invalide", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		http.Error(w, "Erreur lors de la suppression du tarif", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
