package handler

import (
	"net/http"
	"time"

	"github.com/spiritually/spiritually/internal/domain"
	"github.com/spiritually/spiritually/internal/service"
)

// AuthHandler handles authentication and profile HTTP requests.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleRegister processes a registration request.
// POST /auth/register
// Request:  {"username":"...","email":"...","password":"..."}
// Response: 201 {"user": {...}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, "register user", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleLogin processes a login request.
// POST /auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"token":"...","user": {...}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, "login user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserDTO(user),
	})
}

// HandleProfile returns the authenticated user's profile.
// GET /auth/profile
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleUpdateProfile patches the authenticated user's profile,
// preferences, and birth details. Identity and password fields cannot be
// changed here.
// PUT /auth/profile
// Request: {"profile":{...},"preferences":{...},"birthDetails":{...}} — all optional
func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Profile      *domain.Profile      `json:"profile"`
		Preferences  *domain.Preferences  `json:"preferences"`
		BirthDetails *domain.BirthDetails `json:"birthDetails"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	updated, err := h.auth.UpdateProfile(r.Context(), user.ID, service.ProfilePatch{
		Profile:      req.Profile,
		Preferences:  req.Preferences,
		BirthDetails: req.BirthDetails,
	})
	if err != nil {
		writeServiceError(w, "update profile", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(updated),
	})
}

// HandleChangePassword rotates the authenticated user's password.
// POST /auth/password
// Request: {"currentPassword":"...","newPassword":"..."}
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.auth.ChangePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, "change password", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleReadings lists the authenticated user's reading history.
// GET /auth/readings
func (h *AuthHandler) HandleReadings(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	readings, err := h.auth.Readings(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, "list readings", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"readings": toReadingDTOs(readings),
	})
}

// HandleRecordReading appends an entry to the authenticated user's
// reading history.
// POST /auth/readings
// Request: {"questionType":"...","question":"...","answer":"...","feedback":{...}}
func (h *AuthHandler) HandleRecordReading(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		QuestionType string           `json:"questionType"`
		Question     string           `json:"question"`
		Answer       string           `json:"answer"`
		Feedback     *domain.Feedback `json:"feedback"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	entry := domain.ReadingEntry{
		Date:         time.Now().UTC(),
		QuestionType: req.QuestionType,
		Question:     req.Question,
		Answer:       req.Answer,
		Feedback:     req.Feedback,
	}
	if err := h.auth.RecordReading(r.Context(), user.ID, entry); err != nil {
		writeServiceError(w, "record reading", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
