package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type IdentityDTO struct {
	Subject     string `json:"subject"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
}

type SignInDTO struct {
	Subject     string `json:"subject"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	Token       string `json:"token"`
}

type Handler struct {
	provider *StaticProvider
}

func NewHandler(provider *StaticProvider) *Handler {
	return &Handler{provider}
}

// CurrentIdentity returns the signed-in identity, or 401 when signed out.
func (handler *Handler) CurrentIdentity(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	identity, err := handler.provider.CurrentIdentity(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			http.Error(w, "Not signed in", http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(identityToDTO(identity)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// SignIn replaces the current identity and bearer token.
func (handler *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var signInDTO SignInDTO
	if err := json.NewDecoder(r.Body).Decode(&signInDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if signInDTO.Subject == "" {
		http.Error(w, "Missing subject", http.StatusBadRequest)
		return
	}

	log.Infof("Signing in as %s", signInDTO.Subject)
	identity := Identity{
		Subject:     signInDTO.Subject,
		DisplayName: signInDTO.DisplayName,
		Email:       signInDTO.Email,
	}
	handler.provider.SetIdentity(r.Context(), &identity, signInDTO.Token)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(identityToDTO(identity)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// SignOut clears the identity.
func (handler *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	log.Info("Signing out")
	handler.provider.SetIdentity(r.Context(), nil, "")
	w.WriteHeader(http.StatusNoContent)
}

func identityToDTO(identity Identity) IdentityDTO {
	return IdentityDTO{
		Subject:     identity.Subject,
		DisplayName: identity.DisplayName,
		Email:       identity.Email,
	}
}
