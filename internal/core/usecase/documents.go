package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmorenov/ragchat/internal/core/domain"
	"github.com/dmorenov/ragchat/internal/core/ports"
)

// DocumentService exposes the document catalog over whichever data source
// the availability verdict selected.
type DocumentService struct {
	source ports.DataSource
}

func NewDocumentService(source ports.DataSource) *DocumentService {
	return &DocumentService{source: source}
}

func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.source.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs, nil
}

func (s *DocumentService) Upload(ctx context.Context, file domain.FileUpload) (*domain.Document, error) {
	if strings.TrimSpace(file.Name) == "" {
		return nil, domain.WrapError(domain.ErrUploadFailed, "upload", fmt.Errorf("file name is required"))
	}
	return s.source.UploadDocument(ctx, file)
}

func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.WrapError(domain.ErrDeleteFailed, "delete", fmt.Errorf("document id is required"))
	}
	return s.source.DeleteDocument(ctx, id)
}
