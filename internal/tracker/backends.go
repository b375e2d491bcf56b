package tracker

import (
	"context"
	"time"

	"synk/internal/domain"
	"synk/internal/moco"
)

// MocoBackend adapts the Moco client to the TimeBackend interface by
// binding the session user id once at startup.
type MocoBackend struct {
	client *moco.Client
	userID int64
}

// NewMocoBackend resolves the Moco session user and returns the bound
// backend. A failing session call doubles as the credential check.
func NewMocoBackend(ctx context.Context, client *moco.Client) (*MocoBackend, error) {
	userID, err := client.Session(ctx)
	if err != nil {
		return nil, err
	}
	return &MocoBackend{client: client, userID: userID}, nil
}

func (b *MocoBackend) AssignedProjects(ctx context.Context) ([]domain.Project, error) {
	return b.client.AssignedProjects(ctx)
}

func (b *MocoBackend) Activities(ctx context.Context, from, to time.Time) ([]domain.Activity, error) {
	return b.client.Activities(ctx, b.userID, from, to)
}

func (b *MocoBackend) CreateActivity(ctx context.Context, draft domain.EntryDraft) (domain.Activity, error) {
	return b.client.CreateActivity(ctx, draft)
}
