package ports

import (
	"context"

	"github.com/dmorenov/ragchat/internal/core/domain"
)

// DataSource is the single capability behind both operating modes: the
// remote backend when it is reachable, a deterministic synthetic source
// when it is not. Callers never branch on the mode themselves.
type DataSource interface {
	ListDocuments(ctx context.Context) ([]domain.Document, error)
	UploadDocument(ctx context.Context, file domain.FileUpload) (*domain.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	Query(ctx context.Context, documentID, question string) (*domain.QueryResult, error)
}

// Prober resolves backend reachability. The verdict is memoized for the
// process lifetime after the first resolved call.
type Prober interface {
	Probe(ctx context.Context) domain.Availability
}
