package collectefrais

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Tapea/api-prestataire/internal/auth"
	"github.com/Tapea/api-prestataire/internal/configfrais"
	"github.com/Tapea/api-prestataire/internal/paiement"
	"github.com/gorilla/mux"
)

// Handler gère les routes de collecte de frais.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// ListByPrestataire traite GET /prestataires/{id}/collectes[?impayees=true]
func (h *Handler) ListByPrestataire(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de prestataire invalide", http.StatusBadRequest)
		return
	}
	h.repondreListe(w, uint(id), r.URL.Query().Get("impayees") == "true")
}

// ListMoi traite GET /moi/collectes pour le prestataire connecté.
func (h *Handler) ListMoi(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.UserIDDepuisContexte(r.Context())
	if !ok {
		http.Error(w, "Non authentifié", http.StatusUnauthorized)
		return
	}
	h.repondreListe(w, id, r.URL.Query().Get("impayees") == "true")
}

func (h *Handler) repondreListe(w http.ResponseWriter, prestataireID uint, seulementImpayees bool) {
	list, err := h.Service.ListerAvecMontantsCourants(prestataireID, seulementImpayees)
	if err != nil {
		if errors.Is(err, configfrais.ErrConfigAbsente) {
			http.Error(w, "Configuration des frais absente", http.StatusInternalServerError)
			return
		}
		http.Error(w, "Erreur lors de la lecture des collectes", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Get traite GET /collectes/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de collecte invalide", http.StatusBadRequest)
		return
	}

	col, err := h.Service.Collectes.FindByID(nil, uint(id))
	if err != nil {
		http.Error(w, "Collecte introuvable", http.StatusNotFound)
		return
	}

	if !col.EstPayee {
		cfg, err := h.Service.Config.Get(nil)
		if err != nil {
			http.Error(w, "Configuration des frais absente", http.StatusInternalServerError)
			return
		}
		if err := h.Service.MontantsCourants(col, cfg); err != nil {
			http.Error(w, "Erreur lors du recalcul de la collecte", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(col)
}

// Recalculer traite POST /collectes/recalcul (admin).
func (h *Handler) Recalculer(w http.ResponseWriter, r *http.Request) {
	resume, err := h.Service.Reconstruire()
	if err != nil {
		if errors.Is(err, configfrais.ErrConfigAbsente) {
			http.Error(w, "Configuration des frais absente", http.StatusConflict)
			return
		}
		http.Error(w, "Échec du recalcul des collectes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resume)
}

// PayerPourPrestataire traite POST /prestataires/{id}/paiements (admin).
func (h *Handler) PayerPourPrestataire(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de prestataire invalide", http.StatusBadRequest)
		return
	}
	h.rapprocher(w, r, uint(id))
}

// PayerMoi traite POST /moi/paiements pour le prestataire connecté.
func (h *Handler) PayerMoi(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.UserIDDepuisContexte(r.Context())
	if !ok {
		http.Error(w, "Non authentifié", http.StatusUnauthorized)
		return
	}
	h.rapprocher(w, r, id)
}

func (h *Handler) rapprocher(w http.ResponseWriter, r *http.Request, prestataireID uint) {
	defer r.Body.Close()

	var dto RapprocherPaiementDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formé", http.StatusBadRequest)
		return
	}
	if dto.ReferenceExterne == "" {
		http.Error(w, "Référence externe obligatoire", http.StatusBadRequest)
		return
	}

	res, err := h.Service.Rapprocher(&paiement.Paiement{
		ReferenceExterne: dto.ReferenceExterne,
		PrestataireID:    prestataireID,
		Montant:          dto.Montant,
		Statut:           dto.Statut,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrPaiementDejaTraite):
			http.Error(w, "Paiement déjà traité", http.StatusConflict)
		case errors.Is(err, ErrPaiementNonConfirme):
			http.Error(w, "Paiement non confirmé par le processeur", http.StatusBadRequest)
		case errors.Is(err, ErrMontantInvalide):
			http.Error(w, "Montant de paiement invalide", http.StatusBadRequest)
		case errors.Is(err, configfrais.ErrConfigAbsente):
			http.Error(w, "Configuration des frais absente", http.StatusInternalServerError)
		case errors.Is(err, ErrConflitConcurrent):
			http.Error(w, "Échec de la mise à jour du règlement, réessayez", http.StatusServiceUnavailable)
		default:
			http.Error(w, "Échec de la mise à jour du règlement, réessayez", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}
