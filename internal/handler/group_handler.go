package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := required("name", req.Name); err != nil {
		h.handleError(w, r, err)
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), currentUser(r.Context()).ID, req.Name)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainGroupToHTTP(group))
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.ListGroupsForUser(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		response = append(response, domainGroupToHTTP(group))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	detail, err := h.groupService.GetGroupDetail(r.Context(), groupID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, GroupDetailResponse{
		ID:      detail.Group.ID,
		Name:    detail.Group.Name,
		OwnerID: detail.Group.OwnerID,
		Members: domainMembersToHTTP(detail.Members),
	})
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	members, err := h.groupService.ListMembers(r.Context(), groupID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainMembersToHTTP(members))
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	err = h.groupService.RemoveMember(r.Context(), groupID, userID, currentUser(r.Context()).ID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "member removed"})
}

func (h *Handler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req CreateInviteRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		h.handleError(w, r, err)
		return
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			req.Email = nil
		} else if err := validateEmail(email); err != nil {
			h.handleError(w, r, err)
			return
		} else {
			req.Email = &email
		}
	}

	invite, err := h.groupService.CreateInvite(r.Context(), groupID, currentUser(r.Context()).ID, req.Email)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, InviteResponse{
		InviteLink: h.publicURL + "/groups/join/" + invite.Token,
		Token:      invite.Token,
		ExpiresAt:  invite.ExpiresAt,
	})
}

func (h *Handler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	result, err := h.groupService.RedeemInvite(r.Context(), token, currentUser(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	message := "joined group"
	if result.AlreadyMember {
		message = "already a member"
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: message})
}
