package prestataire

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Tapea/api-prestataire/internal/auth"
	"github.com/Tapea/api-prestataire/internal/chauffeur"
	"github.com/Tapea/api-prestataire/internal/collectefrais"
	"github.com/Tapea/api-prestataire/internal/utils"
	"github.com/gorilla/mux"
)

// Handler gère les routes prestataire.
type Handler struct {
	Repo       *Repository
	Chauffeurs *chauffeur.Repository
	Collectes  *collectefrais.Service
}

func NewHandler(repo *Repository, chauffeurs *chauffeur.Repository, collectes *collectefrais.Service) *Handler {
	return &Handler{Repo: repo, Chauffeurs: chauffeurs, Collectes: collectes}
}

// Creer traite POST /prestataires
func (h *Handler) Creer(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var dto CreerPrestataireDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formé", http.StatusBadRequest)
		return
	}
	if dto.Email == "" || dto.Nom == "" {
		http.Error(w, "Nom et email obligatoires", http.StatusBadRequest)
		return
	}

	motDePasse := dto.MotDePasse
	doitChanger := false
	if motDePasse == "" {
		tmp, err := utils.GenererMotDePasseTemporaire()
		if err != nil {
			http.Error(w, "Erreur lors de la génération du mot de passe", http.StatusInternalServerError)
			return
		}
		motDePasse = tmp
		doitChanger = true
	}
	hash, err := utils.HashMotDePasse(motDePasse)
	if err != nil {
		http.Error(w, "Erreur lors du hachage du mot de passe", http.StatusInternalServerError)
		return
	}

	p := Prestataire{
		Nom:                   dto.Nom,
		SIRET:                 dto.SIRET,
		Email:                 dto.Email,
		Telephone:             dto.Telephone,
		Logo:                  dto.Logo,
		MotDePasse:            hash,
		DoitChangerMotDePasse: doitChanger,
	}
	if err := h.Repo.Create(&p); err != nil {
		http.Error(w, "Erreur lors de la création du prestataire", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// Lister traite GET /prestataires
func (h *Handler) Lister(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "Erreur lors de la lecture des prestataires", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Get traite GET /prestataires/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de prestataire invalide", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Prestataire introuvable", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Resume traite GET /prestataires/{id}/resume
func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de prestataire invalide", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Prestataire introuvable", http.StatusNotFound)
		return
	}

	chauffeurs, err := h.Chauffeurs.ListByPrestataire(p.ID)
	if err != nil {
		http.Error(w, "Erreur lors de la lecture des chauffeurs", http.StatusInternalServerError)
		return
	}
	collectes, err := h.Collectes.ListerAvecMontantsCourants(p.ID, false)
	if err != nil {
		http.Error(w, "Erreur lors de la lecture des collectes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(MonterResume(*p, chauffeurs, collectes))
}

// MettreAJour traite PUT /prestataires/{id}
func (h *Handler) MettreAJour(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de prestataire invalide", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Prestataire introuvable", http.StatusNotFound)
		return
	}

	var dto CreerPrestataireDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formé", http.StatusBadRequest)
		return
	}

	p.Nom = dto.Nom
	p.SIRET = dto.SIRET
	p.Email = dto.Email
	p.Telephone = dto.Telephone
	p.Logo = dto.Logo

	if err := h.Repo.Update(p); err != nil {
		http.Error(w, "Erreur lors de la mise à jour du prestataire", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Supprimer traite DELETE /prestataires/{id}
func (h *Handler) Supprimer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de prestataire invalide", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		http.Error(w, "Erreur lors de la suppression du prestataire", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Connexion traite POST /connexion (portail prestataire).
func (h *Handler) Connexion(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var dto ConnexionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formé", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.FindByEmail(dto.Email)
	if err != nil || !utils.VerifierMotDePasse(p.MotDePasse, dto.MotDePasse) {
		http.Error(w, "Identifiants invalides", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateAccessToken(p.ID, false)
	if err != nil {
		http.Error(w, "Erreur lors de l'émission du token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"token":                 token,
		"prestataireId":         p.ID,
		"doitChangerMotDePasse": p.DoitChangerMotDePasse,
	})
}
