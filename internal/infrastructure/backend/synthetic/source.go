package synthetic

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/dmorenov/ragchat/internal/core/domain"
)

// DefaultDelay emulates backend latency so loading states stay exercised
// in demo mode.
const DefaultDelay = 900 * time.Millisecond

var demoCatalog = []domain.Document{
	{ID: "doc-001", Filename: "user-manual.txt", Size: 15420, ChunkCount: 23},
	{ID: "doc-002", Filename: "technical-guide.txt", Size: 28900, ChunkCount: 42},
}

var cannedAnswers = []string{
	"Based on the selected document, the relevant section covers this topic directly.",
	"The document addresses this point in its introductory chapter.",
	"According to the indexed content, the answer is summarized in the supporting passages.",
	"The selected document mentions this briefly; the highlighted passages expand on it.",
}

var demoEvidence = []domain.Evidence{
	{ChunkID: "sim-chunk-1", Content: "Synthetic passage closest to the question.", Similarity: 0.92},
	{ChunkID: "sim-chunk-2", Content: "Second synthetic passage with lower relevance.", Similarity: 0.78},
}

// Source serves a deterministic document set and canned answers when the
// backend is unreachable. The fixed catalog never changes; documents
// uploaded in demo mode are held in a process-lifetime registry.
type Source struct {
	delay   time.Duration
	uploads *cache.Cache

	mu    sync.Mutex
	order []string
}

func New(delay time.Duration) *Source {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Source{
		delay:   delay,
		uploads: cache.New(cache.NoExpiration, 0),
	}
}

func (s *Source) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := make([]domain.Document, 0, len(demoCatalog)+len(s.order))
	docs = append(docs, demoCatalog...)
	for _, id := range s.order {
		if item, ok := s.uploads.Get(id); ok {
			docs = append(docs, item.(domain.Document))
		}
	}
	return docs, nil
}

// UploadDocument fabricates a document with zero chunks, signaling that
// nothing was actually indexed.
func (s *Source) UploadDocument(_ context.Context, file domain.FileUpload) (*domain.Document, error) {
	doc := domain.Document{
		ID:         "sim-" + uuid.NewString(),
		Filename:   file.Name,
		Size:       file.Size,
		ChunkCount: 0,
	}

	s.mu.Lock()
	s.uploads.Set(doc.ID, doc, cache.NoExpiration)
	s.order = append(s.order, doc.ID)
	s.mu.Unlock()

	return &doc, nil
}

// DeleteDocument removes demo-mode uploads and is a no-op success for
// everything else, so the UI stays consistent offline.
func (s *Source) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.uploads.Get(id); !ok {
		return nil
	}
	s.uploads.Delete(id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Query picks one canned answer deterministically from the question and
// document id, after the artificial delay.
func (s *Source) Query(ctx context.Context, documentID, question string) (*domain.QueryResult, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	digest := fnv.New32a()
	digest.Write([]byte(documentID))
	digest.Write([]byte{0})
	digest.Write([]byte(question))

	evidence := make([]domain.Evidence, len(demoEvidence))
	copy(evidence, demoEvidence)

	return &domain.QueryResult{
		Answer:   cannedAnswers[digest.Sum32()%uint32(len(cannedAnswers))],
		Evidence: evidence,
	}, nil
}
