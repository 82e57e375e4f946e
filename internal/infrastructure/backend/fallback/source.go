// Package fallback routes every data-source call to the remote backend or
// the synthetic stand-in based on the memoized availability verdict, so
// callers behave identically in both modes.
package fallback

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmorenov/ragchat/internal/core/domain"
	"github.com/dmorenov/ragchat/internal/core/ports"
	"github.com/dmorenov/ragchat/internal/observability/metrics"
)

type Source struct {
	prober    ports.Prober
	remote    ports.DataSource
	synthetic ports.DataSource
	metrics   *metrics.ClientMetrics
}

func New(prober ports.Prober, remote, synthetic ports.DataSource, m *metrics.ClientMetrics) *Source {
	return &Source{
		prober:    prober,
		remote:    remote,
		synthetic: synthetic,
		metrics:   m,
	}
}

func (s *Source) pick(ctx context.Context) (ports.DataSource, string) {
	verdict := s.prober.Probe(ctx)
	s.metrics.RecordVerdict(verdict.String())
	if verdict == domain.Available {
		return s.remote, "remote"
	}
	return s.synthetic, "synthetic"
}

// ListDocuments soft-degrades to the synthetic catalog when the remote
// listing fails: an empty document list would block every downstream
// flow. Upload, delete and query surface real errors instead.
func (s *Source) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	src, name := s.pick(ctx)

	start := time.Now()
	docs, err := src.ListDocuments(ctx)
	s.metrics.ObserveCall(name, "list", err, time.Since(start))
	if err == nil {
		return docs, nil
	}
	if name != "remote" {
		return nil, err
	}

	slog.Warn("list_degraded_to_synthetic", "error", err)
	s.metrics.RecordListFallback()

	start = time.Now()
	docs, err = s.synthetic.ListDocuments(ctx)
	s.metrics.ObserveCall("synthetic", "list", err, time.Since(start))
	return docs, err
}

func (s *Source) UploadDocument(ctx context.Context, file domain.FileUpload) (*domain.Document, error) {
	src, name := s.pick(ctx)

	start := time.Now()
	doc, err := src.UploadDocument(ctx, file)
	s.metrics.ObserveCall(name, "upload", err, time.Since(start))
	return doc, err
}

func (s *Source) DeleteDocument(ctx context.Context, id string) error {
	src, name := s.pick(ctx)

	start := time.Now()
	err := src.DeleteDocument(ctx, id)
	s.metrics.ObserveCall(name, "delete", err, time.Since(start))
	return err
}

func (s *Source) Query(ctx context.Context, documentID, question string) (*domain.QueryResult, error) {
	src, name := s.pick(ctx)

	start := time.Now()
	result, err := src.Query(ctx, documentID, question)
	s.metrics.ObserveCall(name, "query", err, time.Since(start))
	return result, err
}
