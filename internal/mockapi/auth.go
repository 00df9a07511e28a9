package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"myfuture/pkg/types"
)

type registerRequest struct {
	Email       string            `json:"email"`
	Password    string            `json:"password"`
	Name        string            `json:"name"`
	PhoneNumber string            `json:"phoneNumber"`
	Birthdate   string            `json:"birthdate"`
	Address     string            `json:"address"`
	AccountType types.AccountType `json:"accountType"`
}

func (s *Service) handlePostRegister(w http.ResponseWriter, r *http.Request) {
	var input registerRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if input.Email == "" || input.Password == "" {
		s.respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if !input.AccountType.Valid() {
		s.respondError(w, http.StatusBadRequest, "unsupported account type")
		return
	}

	user, err := s.store.CreateUser(types.User{
		Email:       input.Email,
		Name:        input.Name,
		PhoneNumber: input.PhoneNumber,
		Birthdate:   input.Birthdate,
		Address:     input.Address,
		AccountType: input.AccountType,
	}, input.Password)
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			s.respondError(w, http.StatusConflict, "email already registered")
			return
		}
		s.logger.WithError(err).Error("failed to create user")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user, err := s.store.Authenticate(input.Email, input.Password)
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	bearer, err := s.issuer.Mint(user.UUID, user.Email, bearerTTL)
	if err != nil {
		s.logger.WithError(err).Error("failed to mint bearer token")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	refresh, err := s.issuer.Mint(user.UUID, user.Email, refreshTTL)
	if err != nil {
		s.logger.WithError(err).Error("failed to mint refresh token")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"bearerToken":  map[string]string{"token": bearer},
		"refreshToken": map[string]string{"token": refresh},
	})
}

func (s *Service) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userIDFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "missing session token")
		return
	}

	user, err := s.store.UserByID(userID)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "user not found")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"user": user})
}
