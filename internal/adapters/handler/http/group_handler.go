package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crew-app/crew/internal/core/domain"
	"github.com/crew-app/crew/internal/core/ports"
)

type GroupHandler struct {
	service ports.GroupService
	logger  *slog.Logger
}

func NewGroupHandler(service ports.GroupService, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{service: service, logger: logger}
}

type createGroupRequest struct {
	Name string `json:"name"`
}

type joinGroupRequest struct {
	InvitationCode string `json:"invitation_code"`
}

type groupResponse struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	InvitationCode string `json:"invitation_code"`
	AdminID        int    `json:"admin_id"`
}

type groupsResponse struct {
	Groups []groupResponse `json:"groups"`
}

func toGroupResponse(group *domain.Group) groupResponse {
	return groupResponse{
		ID:             group.ID,
		Name:           group.Name,
		InvitationCode: group.InvitationCode,
		AdminID:        group.AdminID,
	}
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.service.CreateGroup(r.Context(), req.Name, userID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	var req joinGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.service.JoinGroup(r.Context(), req.InvitationCode, userID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	groups, err := h.service.UserGroups(r.Context(), userID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	resp := groupsResponse{Groups: []groupResponse{}}
	for _, group := range groups {
		resp.Groups = append(resp.Groups, toGroupResponse(group))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *GroupHandler) Leave(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	groupID, err := strconv.Atoi(chi.URLParam(r, "groupID"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid group id")
		return
	}

	if err := h.service.LeaveGroup(r.Context(), groupID, userID); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "left group")
}

func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	groupID, err := strconv.Atoi(chi.URLParam(r, "groupID"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid group id")
		return
	}

	if err := h.service.DeleteGroup(r.Context(), groupID, userID); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "group deleted")
}

func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	groupID, err := strconv.Atoi(chi.URLParam(r, "groupID"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid group id")
		return
	}
	memberID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid member id")
		return
	}

	if err := h.service.RemoveMember(r.Context(), groupID, memberID, userID); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "member removed")
}
