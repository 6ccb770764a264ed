package v1

import (
	"net/http"
	"path/filepath"
	"strings"

	"merkato-backend/internal/domain"
	"merkato-backend/internal/usecase"
	"merkato-backend/pkg/logger"
	"merkato-backend/pkg/storage"
	"merkato-backend/pkg/utils"
)

var (
	allowedMimeTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
	}
	allowedExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	}
)

// UploadHandler accepts avatar images, normalizes them and stores them in the
// object bucket. The resulting public URL lands on the user's profile.
type UploadHandler struct {
	storage       *storage.R2Storage
	authUC        *usecase.AuthUsecase
	maxUploadSize int64
}

func NewUploadHandler(s *storage.R2Storage, authUC *usecase.AuthUsecase, maxUploadSizeMB int64) *UploadHandler {
	return &UploadHandler{
		storage:       s,
		authUC:        authUC,
		maxUploadSize: maxUploadSizeMB << 20,
	}
}

func (h *UploadHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedMimeTypes[contentType] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file type. Allowed: JPEG, PNG, WebP")
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file extension")
		return
	}

	processed, newContentType, err := utils.ProcessAvatar(file)
	if err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Msg("Avatar processing failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to process image")
		return
	}

	// Kept around for a delete-after-upload once the new URL is stored.
	previous := ""
	if profile, err := h.authUC.GetProfile(r.Context(), user.ID); err == nil {
		previous = profile.Avatar
	}

	url, err := h.storage.UploadBuffer(r.Context(), processed, newContentType)
	if err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Msg("Avatar upload failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	if err := h.authUC.SetAvatar(r.Context(), user.ID, url); err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Msg("Avatar save failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save avatar")
		return
	}

	if previous != "" {
		if err := h.storage.DeleteFile(r.Context(), previous); err != nil {
			logger.Warn().Err(err).Str("user_id", user.ID).Msg("Old avatar cleanup failed")
		}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}
