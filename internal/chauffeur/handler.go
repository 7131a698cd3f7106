package chauffeur

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Handler gère les routes chauffeur.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Creer traite POST /chauffeurs
func (h *Handler) Creer(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var c Chauffeur
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "JSON mal formé", http.StatusBadRequest)
		return
	}
	if c.Type == "" {
		c.Type = TypePrestataire
	}
	if c.Type == TypeSalarie {
		// Un salarié Tapea n'est rattaché à aucun prestataire.
		c.PrestataireID = nil
	}

	if err := h.Repo.Create(&c); err != nil {
		http.Error(w, "Erreur lors de la création du chauffeur", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// Lister traite GET /chauffeurs[?prestataireId=N]
func (h *Handler) Lister(w http.ResponseWriter, r *http.Request) {
	var (
		list []Chauffeur
		err  error
	)
	if s := r.URL.Query().Get("prestataireId"); s != "" {
		id, convErr := strconv.Atoi(s)
		if convErr != nil {
			http.Error(w, "prestataireId invalide", http.StatusBadRequest)
			return
		}
		list, err = h.Repo.ListByPrestataire(uint(id))
	} else {
		list, err = h.Repo.ListAll()
	}
	if err != nil {
		http.Error(w, "Erreur lors de la lecture des chauffeurs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Get traite GET /chauffeurs/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de chauffeur invalide", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Chauffeur introuvable", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// MettreAJour traite PUT /chauffeurs/{id}
func (h *Handler) MettreAJour(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de chauffeur invalide", http.StatusBadRequest)
		return
	}

	existant, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Chauffeur introuvable", http.StatusNotFound)
		return
	}

	var payload Chauffeur
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formé", http.StatusBadRequest)
		return
	}

	existant.Nom = payload.Nom
	existant.Prenom = payload.Prenom
	existant.Telephone = payload.Telephone
	existant.Email = payload.Email
	existant.Photo = payload.Photo
	existant.Type = payload.Type
	existant.PrestataireID = payload.PrestataireID
	existant.Actif = payload.Actif
	if existant.Type == TypeSalarie {
		existant.PrestataireID = nil
	}

	if err := h.Repo.Update(existant); err != nil {
		http.Error(w, "Erreur lors de la mise à jour du chauffeur", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existant)
}

// Supprimer traite DELETE /chauffeurs/{id}
func (h *Handler) Supprimer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de chauffeur invalide", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		http.Error(w, "Erreur lors de la suppression du chauffeur", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
