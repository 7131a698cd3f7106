package client

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Handler gère les routes client.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Creer traite POST /clients
func (h *Handler) Creer(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var c Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "JSON mal formé", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Create(&c); err != nil {
		http.Error(w, "Erreur lors de la création du client", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// Lister traite GET /clients
func (h *Handler) Lister(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "Erreur lors de la lecture des clients", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Get traite GET /clients/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de client invalide", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Client introuvable", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// MettreAJour traite PUT /clients/{id}
func (h *Handler) MettreAJour(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de client invalide", http.StatusBadRequest)
		return
	}

	existant, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Client introuvable", http.StatusNotFound)
		return
	}

	var payload Client
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formé", http.StatusBadRequest)
		return
	}

	existant.Nom = payload.Nom
	existant.Prenom = payload.Prenom
	existant.Telephone = payload.Telephone
	existant.Email = payload.Email

	if err := h.Repo.Update(existant); err != nil {
		http.Error(w, "Erreur lors de la mise à jour du client", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existant)
}

// Supprimer traite DELETE /clients/{id}
func (h *Handler) Supprimer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de client invalide", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		http.Error(w, "Erreur lors de la suppression du client", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
