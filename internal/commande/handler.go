package commande

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// EnregistreurCollecte rattache une commande terminée à sa collecte de frais.
// Implémenté par le moteur de collecte; injecté ici pour éviter le cycle.
// La transaction passée est celle de la clôture: statut et collecte basculent
// ensemble ou pas du tout.
type EnregistreurCollecte interface {
	EnregistrerCommande(tx *gorm.DB, commandeID uint) error
}

// Handler gère les routes commande.
type Handler struct {
	Repo      *Repository
	Collectes EnregistreurCollecte
}

func NewHandler(repo *Repository, collectes EnregistreurCollecte) *Handler {
	return &Handler{Repo: repo, Collectes: collectes}
}

// Creer traite POST /commandes
func (h *Handler) Creer(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var c Commande
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "JSON mal formé", http.StatusBadRequest)
		return
	}
	if c.Statut == "" {
		c.Statut = StatutEnCours
	}
	if c.PrixTotal < 0 {
		http.Error(w, "Prix total invalide", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Create(&c); err != nil {
		http.Error(w, "Erreur lors de la création de la commande", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// Lister traite GET /commandes
func (h *Handler) Lister(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "Erreur lors de la lecture des commandes", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Get traite GET /commandes/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de commande invalide", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Commande introuvable", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Terminer traite POST /commandes/{id}/terminer
// Passe la commande en Terminée puis la rattache à sa collecte de frais.
func (h *Handler) Terminer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de commande invalide", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Commande introuvable", http.StatusNotFound)
		return
	}
	if c.Statut == StatutTerminee {
		http.Error(w, "Commande déjà terminée", http.StatusConflict)
		return
	}
	if c.Statut == StatutAnnulee {
		http.Error(w, "Commande annulée, non terminable", http.StatusConflict)
		return
	}

	now := time.Now()
	c.Statut = StatutTerminee
	c.TermineeLe = &now

	// Statut et collecte dans la même transaction: si l'enregistrement de la
	// collecte échoue, la commande reste En cours et la clôture se rejoue.
	tx := h.Repo.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Erreur lors de la clôture de la commande", http.StatusInternalServerError)
		return
	}
	if err := h.Repo.WithDB(tx).Update(c); err != nil {
		tx.Rollback()
		http.Error(w, "Erreur lors de la clôture de la commande", http.StatusInternalServerError)
		return
	}
	if h.Collectes != nil {
		if err := h.Collectes.EnregistrerCommande(tx, c.ID); err != nil {
			tx.Rollback()
			http.Error(w, "Échec de la mise à jour du règlement, réessayez", http.StatusInternalServerError)
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Erreur lors de la clôture de la commande", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Annuler traite POST /commandes/{id}/annuler
func (h *Handler) Annuler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de commande invalide", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Commande introuvable", http.StatusNotFound)
		return
	}
	if c.Statut == StatutTerminee {
		// Une commande terminée est immuable.
		http.Error(w, "Commande terminée, non annulable", http.StatusConflict)
		return
	}

	c.Statut = StatutAnnulee
	if err := h.Repo.Update(c); err != nil {
		http.Error(w, "Erreur lors de l'annulation de la commande", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Supprimer traite DELETE /commandes/{id}
func (h *Handler) Supprimer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de commande invalide", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Commande introuvable", http.StatusNotFound)
		return
	}
	if c.Statut == StatutTerminee {
		http.Error(w, "Commande terminée, non supprimable", http.StatusConflict)
		return
	}

	if err := h.Repo.Delete(c.ID); err != nil {
		http.Error(w, "Erreur lors de la suppression de la commande", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
