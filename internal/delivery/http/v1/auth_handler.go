package v1

import (
	"errors"
	"net/http"
	"time"

	"merkato-backend/internal/domain"
	"merkato-backend/internal/usecase"
	"merkato-backend/pkg/logger"
	"merkato-backend/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

type AuthHandler struct {
	authUC *usecase.AuthUsecase
}

func NewAuthHandler(authUC *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req usecase.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authUC.Register(r.Context(), req)
	if err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			utils.WriteError(w, http.StatusBadRequest, vErrs.Error())
			return
		}
		logger.Error().Err(err).Str("email", req.Email).Msg("Registration failed")
		utils.WriteError(w, http.StatusConflict, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"user":    user,
		"message": "Registration successful. Check your email to verify the account.",
	})
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.WriteError(w, http.StatusBadRequest, "Verification token required")
		return
	}

	if err := h.authUC.VerifyEmail(r.Context(), token); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Email verified"})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, user, err := h.authUC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			utils.WriteError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, usecase.ErrEmailNotVerified):
			utils.WriteError(w, http.StatusForbidden, err.Error())
		default:
			logger.Error().Err(err).Str("email", req.Email).Msg("Login failed")
			utils.WriteError(w, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	setSessionCookie(w, session)
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
		"user":    user,
	})
}

// Refresh validates the current token and re-issues it when it is older than
// the refresh window. A token inside the window comes back unchanged.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := utils.ExtractToken(r)
	if token == "" {
		utils.WriteError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	session, err := h.authUC.Refresh(r.Context(), token)
	if err != nil {
		clearSessionCookie(w)
		utils.WriteError(w, http.StatusUnauthorized, "Invalid or expired session")
		return
	}

	setSessionCookie(w, session)
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"session": session})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.authUC.GetProfile(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	utils.WriteJSON(w, http.StatusOK, profile)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req usecase.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.authUC.UpdateProfile(r.Context(), user.ID, req)
	if err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			utils.WriteError(w, http.StatusBadRequest, vErrs.Error())
			return
		}
		logger.Error().Err(err).Str("user_id", user.ID).Msg("UpdateProfile failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	utils.WriteJSON(w, http.StatusOK, updated)
}

func setSessionCookie(w http.ResponseWriter, session *domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: "accessToken", MaxAge: -1, Path: "/"})
}
