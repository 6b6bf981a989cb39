package handler

import (
	"strings"

	"github.com/bagdasarian/task-groups/internal/service"
	"github.com/rs/zerolog"
)

type Handler struct {
	authService  service.AuthService
	userService  service.UserService
	groupService service.GroupService
	taskService  service.TaskService
	publicURL    string
	logger       zerolog.Logger
}

// NewHandler собирает HTTP-обработчики. publicURL - внешний адрес сервиса,
// из него строятся ссылки приглашений.
func NewHandler(
	authService service.AuthService,
	userService service.UserService,
	groupService service.GroupService,
	taskService service.TaskService,
	publicURL string,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		authService:  authService,
		userService:  userService,
		groupService: groupService,
		taskService:  taskService,
		publicURL:    strings.TrimRight(publicURL, "/"),
		logger:       logger,
	}
}
