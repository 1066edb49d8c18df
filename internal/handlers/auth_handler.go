package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"jobprep/api/internal/middleware"
	"jobprep/api/internal/models"
	"jobprep/api/internal/utils"
)

const bcryptCost = 12

var (
	hashPassword = func(password string) ([]byte, error) {
		return bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	}
	comparePassword = func(hash, password string) error {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	}
	issueToken = utils.IssueToken
)

// AuthHandler manages registration, login and the caller's own profile.
type AuthHandler struct {
	repo      UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func NewAuthHandler(repo UserRepository, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.RegisterRequest](r)

	if existing, _ := h.repo.GetUserByEmail(r.Context(), req.Email); existing != nil {
		utils.JSONError(w, http.StatusConflict, "email_taken", "Email already in use")
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		h.logger.Error("Failed to hash password", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error, please try again later.")
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if req.Role == models.RoleRecruiter {
		user.Company = req.Company
	}

	if err := h.repo.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, models.ErrConflict) {
			utils.JSONError(w, http.StatusConflict, "email_taken", "Email already in use")
			return
		}
		h.logger.Error("Failed to create user", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error, please try again later.")
		return
	}

	token, err := issueToken(user, h.jwtSecret, h.tokenTTL)
	if err != nil {
		h.logger.Error("Failed to sign token", zap.Error(err), zap.Uint("user_id", user.ID))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Failed to sign token")
		return
	}

	h.logger.Info("User registered", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	utils.JSON(w, http.StatusCreated, models.AuthResponse{
		Message: "User registered successfully.",
		Token:   token,
		User:    user,
	})
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.LoginRequest](r)

	user, err := h.repo.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			h.logger.Error("Failed to load user for login", zap.Error(err))
			utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error")
			return
		}
		utils.JSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		return
	}
	if comparePassword(user.PasswordHash, req.Password) != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		return
	}

	token, err := issueToken(user, h.jwtSecret, h.tokenTTL)
	if err != nil {
		h.logger.Error("Failed to sign token", zap.Error(err), zap.Uint("user_id", user.ID))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Failed to sign token")
		return
	}
	utils.JSON(w, http.StatusOK, models.AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	user, err := h.repo.GetUserByID(r.Context(), p.UserID)
	if err != nil {
		h.writeUserError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) UpdateMeHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	req := middleware.GetValidatedRequest[*models.UpdateProfileRequest](r)

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Company != nil {
		updates["company"] = *req.Company
	}

	user, err := h.repo.UpdateUser(r.Context(), p.UserID, updates)
	if err != nil {
		h.writeUserError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		utils.JSONError(w, http.StatusNotFound, "not_found", "User not found")
	case errors.Is(err, models.ErrConflict):
		utils.JSONError(w, http.StatusConflict, "email_taken", "Email already in use")
	default:
		h.logger.Error("User repository error", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error")
	}
}

// requirePrincipal writes 401 when the request carries no authenticated caller.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (middleware.Principal, bool) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "missing_token", "No token, authorization denied")
	}
	return p, ok
}
