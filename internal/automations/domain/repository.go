package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrAutomationNotFound = errors.New("automation not found")

// Repository persists automations.
type Repository interface {
	Save(ctx context.Context, automation *Automation) error
	FindByID(ctx context.Context, id uuid.UUID) (*Automation, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Automation, error)
	FindActive(ctx context.Context) ([]*Automation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
