package handler

import "net/http"

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := required("title", req.Title); err != nil {
		h.handleError(w, r, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), httpCreateTaskToDomain(req, currentUser(r.Context()).ID))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainTaskToHTTP(task))
}

func (h *Handler) ListGroupTasks(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	tasks, err := h.taskService.ListGroupTasks(r.Context(), groupID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainTasksToHTTP(tasks))
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req UpdateTaskRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.handleError(w, r, err)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), taskID, currentUser(r.Context()).ID, httpUpdateTaskToDomain(req))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainTaskToHTTP(task))
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), taskID, currentUser(r.Context()).ID); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "task deleted"})
}
