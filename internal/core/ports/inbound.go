package ports

import (
	"context"

	"github.com/dmorenov/ragchat/internal/core/domain"
)

// DocumentCatalog is the inbound contract for document management.
type DocumentCatalog interface {
	List(ctx context.Context) ([]domain.Document, error)
	Upload(ctx context.Context, file domain.FileUpload) (*domain.Document, error)
	Delete(ctx context.Context, id string) error
}

// ChatService is the inbound contract for the conversation session.
type ChatService interface {
	Submit(ctx context.Context, documentID, question string) (domain.ChatTurn, error)
	Turns() []domain.ChatTurn
	Busy() bool
}
