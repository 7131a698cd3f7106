package administrateur

import (
	"encoding/json"
	"net/http"

	"github.com/Tapea/api-prestataire/internal/auth"
	"github.com/Tapea/api-prestataire/internal/utils"
)

// Handler gère les routes administrateur.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Connexion traite POST /admin/connexion
func (h *Handler) Connexion(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var dto struct {
		Email      string `json:"email"`
		MotDePasse string `json:"motDePasse"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formé", http.StatusBadRequest)
		return
	}

	a, err := h.Repo.FindByEmail(dto.Email)
	if err != nil || !utils.VerifierMotDePasse(a.MotDePasse, dto.MotDePasse) {
		http.Error(w, "Identifiants invalides", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateAccessToken(a.ID, a.EstAdmin)
	if err != nil {
		http.Error(w, "Erreur lors de l'émission du token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"token":            token,
		"administrateurId": a.ID,
	})
}

// Creer traite POST /admin/administrateurs
func (h *Handler) Creer(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var dto struct {
		Nom        string `json:"nom"`
		Prenom     string `json:"prenom"`
		Email      string `json:"email"`
		MotDePasse string `json:"motDePasse"`
		Telephone  string `json:"telephone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formé", http.StatusBadRequest)
		return
	}
	if dto.Email == "" || dto.MotDePasse == "" {
		http.Error(w, "Email et mot de passe obligatoires", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashMotDePasse(dto.MotDePasse)
	if err != nil {
		http.Error(w, "Erreur lors du hachage du mot de passe", http.StatusInternalServerError)
		return
	}

	a := Administrateur{
		Nom:        dto.Nom,
		Prenom:     dto.Prenom,
		Email:      dto.Email,
		MotDePasse: hash,
		Telephone:  dto.Telephone,
		EstAdmin:   true,
	}
	if err := h.Repo.Create(&a); err != nil {
		http.Error(w, "Erreur lors de la création de l'administrateur", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(a)
}

// Lister traite GET /admin/administrateurs
func (h *Handler) Lister(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "Erreur lors de la lecture des administrateurs", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
