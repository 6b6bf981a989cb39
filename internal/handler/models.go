package handler

import (
	"bytes"
	"encoding/json"
	"time"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type GroupResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type MemberResponse struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type GroupDetailResponse struct {
	ID      int64            `json:"id"`
	Name    string           `json:"name"`
	OwnerID int64            `json:"owner_id"`
	Members []MemberResponse `json:"members"`
}

type CreateInviteRequest struct {
	Email *string `json:"email"`
}

type InviteResponse struct {
	InviteLink string     `json:"invite_link"`
	Token      string     `json:"token"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Deadline    Deadline `json:"deadline"`
	GroupID     *int64   `json:"group_id"`
}

// UpdateTaskRequest - частичное обновление, отсутствующее поле не меняется
type UpdateTaskRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Deadline    Deadline `json:"deadline"`
}

type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Deadline    *time.Time `json:"deadline"`
	CreatorID   int64      `json:"creator_id"`
	GroupID     *int64     `json:"group_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Deadline различает отсутствующее поле, явный null и значение.
// Принимает YYYY-MM-DD или RFC 3339.
type Deadline struct {
	Set   bool
	Valid bool
	Time  time.Time
}

const dateLayout = "2006-01-02"

func (d *Deadline) UnmarshalJSON(data []byte) error {
	d.Set = true
	if bytes.Equal(data, []byte("null")) {
		d.Valid = false
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errInvalidDeadline
	}

	t, err := parseDeadline(raw)
	if err != nil {
		return err
	}
	d.Valid = true
	d.Time = t
	return nil
}

func parseDeadline(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, errInvalidDeadline
}
