package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/planet-api/internal/api/shared"
	"github.com/phrazzld/planet-api/internal/domain"
	"github.com/phrazzld/planet-api/internal/platform/logger"
	"github.com/phrazzld/planet-api/internal/service"
)

// UserHandler handles the /users resource.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserListResponse(users))
}

// GetUser handles GET /users/{userid}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, userIDParam)

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := domain.NewUser(*req.UserID, *req.FirstName, *req.LastName, req.Groups)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.userService.CreateUser(r.Context(), user); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("user created via API", slog.String("userid", user.UserID))
	shared.RespondCreated(w, resourcePath("users", user.UserID))
}

// UpdateUser handles PUT /users/{userid}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, userIDParam)

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.UserID != nil && *req.UserID != userID {
		respondWithMappedError(w, r, ErrUserIDMismatch)
		return
	}

	user, err := domain.NewUser(userID, *req.FirstName, *req.LastName, req.Groups)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.userService.UpdateUser(r.Context(), user); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondNoContent(w)
}

// DeleteUser handles DELETE /users/{userid}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.DeleteUser(r.Context(), pathParam(r, userIDParam)); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondNoContent(w)
}
