package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/bagdasarian/task-groups/internal/domain"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

var errInvalidDeadline = domain.NewValidationError("deadline must be YYYY-MM-DD or RFC 3339")

// decodeJSON читает тело запроса в dst. Если optional, пустое тело не ошибка.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, optional bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var domainErr *domain.DomainError
		switch {
		case errors.As(err, &domainErr):
			return domainErr
		case errors.Is(err, io.EOF):
			if optional {
				return nil
			}
			return domain.NewValidationError("request body is required")
		}
		return domain.NewValidationError("invalid JSON body")
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name + " must be a positive integer")
	}
	return id, nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return domain.NewValidationError("email is not a valid address")
	}
	return nil
}

// bcrypt не хеширует пароли длиннее 72 байт
const maxPasswordBytes = 72

var errPasswordTooLong = domain.NewValidationError("password must not exceed " + strconv.Itoa(maxPasswordBytes) + " bytes")

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field + " is required")
	}
	return nil
}
