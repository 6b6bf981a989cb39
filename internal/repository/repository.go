package repository

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicate     = errors.New("duplicate key")
	ErrAlreadyMember = errors.New("user is already a member of the group")
	ErrInviteUsed    = errors.New("invite already used")
)

// Transactor выполняет fn в одной транзакции. Репозитории, вызванные
// с полученным ctx, работают внутри этой транзакции.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
