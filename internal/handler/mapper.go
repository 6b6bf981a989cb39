package handler

import (
	"github.com/bagdasarian/task-groups/internal/domain"
)

func domainUserToHTTP(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	}
}

func domainGroupToHTTP(group *domain.Group) GroupResponse {
	return GroupResponse{
		ID:        group.ID,
		Name:      group.Name,
		OwnerID:   group.OwnerID,
		CreatedAt: group.CreatedAt,
	}
}

func domainMembersToHTTP(members []domain.Member) []MemberResponse {
	result := make([]MemberResponse, 0, len(members))
	for _, member := range members {
		result = append(result, MemberResponse{
			ID:       member.MembershipID,
			UserID:   member.UserID,
			Username: member.Username,
			Email:    member.Email,
			Role:     string(member.Role),
		})
	}
	return result
}

func domainTaskToHTTP(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Deadline:    task.Deadline,
		CreatorID:   task.CreatorID,
		GroupID:     task.GroupID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func domainTasksToHTTP(tasks []*domain.Task) []TaskResponse {
	result := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, domainTaskToHTTP(task))
	}
	return result
}

func httpCreateTaskToDomain(req CreateTaskRequest, creatorID int64) *domain.Task {
	task := &domain.Task{
		Title:     req.Title,
		CreatorID: creatorID,
		GroupID:   req.GroupID,
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = domain.TaskStatus(*req.Status)
	}
	if req.Deadline.Valid {
		deadline := req.Deadline.Time
		task.Deadline = &deadline
	}
	return task
}

func httpUpdateTaskToDomain(req UpdateTaskRequest) domain.TaskUpdate {
	update := domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		update.Status = &status
	}
	if req.Deadline.Set {
		if req.Deadline.Valid {
			deadline := req.Deadline.Time
			update.Deadline = &deadline
		} else {
			update.ClearDeadline = true
		}
	}
	return update
}
