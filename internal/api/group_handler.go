package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/planet-api/internal/api/shared"
	"github.com/phrazzld/planet-api/internal/platform/logger"
	"github.com/phrazzld/planet-api/internal/service"
)

var errMembersNotArray = errors.New("body is not a JSON array")

// GroupHandler handles the /groups resource.
type GroupHandler struct {
	groupService service.GroupService
	logger       *slog.Logger
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService service.GroupService, logger *slog.Logger) *GroupHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GroupHandler{
		groupService: groupService,
		logger:       logger.With(slog.String("component", "group_handler")),
	}
}

// ListGroups handles GET /groups
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	names, err := h.groupService.ListGroups(r.Context())
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(names))
}

// GetMembers handles GET /groups/{group_name}
func (h *GroupHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.groupService.GetMembers(r.Context(), pathParam(r, groupNameParam))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(members))
}

// CreateGroup handles POST /groups
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateGroupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.groupService.CreateGroup(r.Context(), *req.Name); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("group created via API", slog.String("group_name", *req.Name))
	shared.RespondCreated(w, resourcePath("groups", *req.Name))
}

// ReplaceMembers handles PUT /groups/{group_name}. The body is read up
// front but only decoded once the group is known to exist, so a missing
// group is reported before a malformed body.
func (h *GroupHandler) ReplaceMembers(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, groupNameParam)
	body, readErr := shared.ReadBody(w, r)

	members := func() ([]string, error) {
		if readErr != nil {
			return nil, readErr
		}
		var userIDs []string
		if err := shared.DecodeJSONBytes(body, &userIDs); err != nil {
			return nil, err
		}
		if userIDs == nil {
			return nil, errMembersNotArray
		}
		return userIDs, nil
	}

	if err := h.groupService.ReplaceMembers(r.Context(), name, members); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondNoContent(w)
}

// DeleteGroup handles DELETE /groups/{group_name}
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.groupService.DeleteGroup(r.Context(), pathParam(r, groupNameParam)); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondNoContent(w)
}
