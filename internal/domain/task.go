package domain

import "time"

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "inprogress"
	StatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          int64
	Title       string
	Description string
	Status      TaskStatus
	Deadline    *time.Time
	CreatorID   int64
	GroupID     *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskUpdate - частичное обновление: nil означает "не менять".
// ClearDeadline сбрасывает срок, если он явно передан как null.
type TaskUpdate struct {
	Title         *string
	Description   *string
	Status        *TaskStatus
	Deadline      *time.Time
	ClearDeadline bool
}
