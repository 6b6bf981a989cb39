package handler

import (
	"net/http"
	"strings"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.handleError(w, r, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	for _, err := range []error{
		required("email", req.Email),
		required("username", req.Username),
		required("password", req.Password),
	} {
		if err != nil {
			h.handleError(w, r, err)
			return
		}
	}
	if err := validateEmail(req.Email); err != nil {
		h.handleError(w, r, err)
		return
	}
	if len(req.Password) > maxPasswordBytes {
		h.handleError(w, r, errPasswordTooLong)
		return
	}

	user, err := h.authService.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RegisterResponse{ID: user.ID, Email: user.Email})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := required("email", req.Email); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := required("password", req.Password); err != nil {
		h.handleError(w, r, err)
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token.Token,
		TokenType:   "bearer",
	})
}
