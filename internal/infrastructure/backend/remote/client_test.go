package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmorenov/ragchat/internal/core/domain"
)

func TestListDocumentsWrappedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"documents":[{"id":"d1","filename":"a.txt","size":10,"n_chunks":2}]}`)
	}))
	defer server.Close()

	docs, err := New(server.URL).ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected one document, got %d", len(docs))
	}
	doc := docs[0]
	if doc.ID != "d1" || doc.Filename != "a.txt" || doc.Size != 10 || doc.ChunkCount != 2 {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestListDocumentsBareArrayShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":"d2","filename":"b.txt","size":5,"n_chunks":1}]`)
	}))
	defer server.Close()

	docs, err := New(server.URL).ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "d2" {
		t.Fatalf("unexpected documents: %+v", docs)
	}
}

func TestListDocumentsEmptyWrapper(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	docs, err := New(server.URL).ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", docs)
	}
}

func TestListDocumentsMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"documents": [truncated`)
	}))
	defer server.Close()

	_, err := New(server.URL).ListDocuments(context.Background())
	if !domain.IsKind(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected malformed response kind, got %v", err)
	}
}

func TestQueryMapsAnswerAndEmptySources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode query request: %v", err)
		}
		if req["document_id"] != "d1" || req["question"] != "capital of France?" {
			t.Errorf("unexpected query payload: %v", req)
		}
		fmt.Fprint(w, `{"answer":"Paris","sources":[]}`)
	}))
	defer server.Close()

	result, err := New(server.URL).Query(context.Background(), "d1", "capital of France?")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if result.Answer != "Paris" {
		t.Fatalf("expected Paris, got %q", result.Answer)
	}
	if result.Evidence == nil || len(result.Evidence) != 0 {
		t.Fatalf("expected empty non-nil evidence, got %#v", result.Evidence)
	}
}

func TestQueryAbsentSourcesNormalizeToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"answer":"Paris"}`)
	}))
	defer server.Close()

	result, err := New(server.URL).Query(context.Background(), "d1", "q")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if result.Evidence == nil {
		t.Fatal("expected non-nil evidence for absent sources")
	}
}

func TestQueryNormalizesBothSourceShapes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"answer":"ok","sources":[
			{"chunk_id":"c1","content":"first","similarity":0.9},
			"bare string chunk"
		]}`)
	}))
	defer server.Close()

	result, err := New(server.URL).Query(context.Background(), "d1", "q")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(result.Evidence) != 2 {
		t.Fatalf("expected two evidence entries, got %d", len(result.Evidence))
	}
	if result.Evidence[0].ChunkID != "c1" || result.Evidence[0].Similarity != 0.9 {
		t.Fatalf("object source mismapped: %+v", result.Evidence[0])
	}
	if result.Evidence[1].Content != "bare string chunk" || result.Evidence[1].Similarity != 0 {
		t.Fatalf("string source mismapped: %+v", result.Evidence[1])
	}
}

func TestQueryServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := New(server.URL).Query(context.Background(), "d1", "q")
	if !domain.IsKind(err, domain.ErrQueryFailed) {
		t.Fatalf("expected query failed kind, got %v", err)
	}
	code, ok := domain.StatusOf(err)
	if !ok || code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d (ok=%v)", code, ok)
	}
}

func TestUploadDocumentMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("multipart field missing: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "notes.txt" {
			t.Errorf("unexpected filename %q", header.Filename)
		}
		fmt.Fprint(w, `{"id":"doc-9","filename":"notes.txt","size":5,"n_chunks":3}`)
	}))
	defer server.Close()

	doc, err := New(server.URL).UploadDocument(context.Background(), domain.FileUpload{
		Name: "notes.txt",
		Size: 5,
		Data: strings.NewReader("hello"),
	})
	if err != nil {
		t.Fatalf("UploadDocument() error = %v", err)
	}
	if doc.ID != "doc-9" || doc.ChunkCount != 3 {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestUploadDocumentFailureCarriesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "only .txt accepted", http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := New(server.URL).UploadDocument(context.Background(), domain.FileUpload{
		Name: "notes.exe",
		Data: strings.NewReader("x"),
	})
	if !domain.IsKind(err, domain.ErrUploadFailed) {
		t.Fatalf("expected upload failed kind, got %v", err)
	}
	if code, _ := domain.StatusOf(err); code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", code)
	}
}

func TestDeleteDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/documents/d1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		fmt.Fprint(w, `{"status":"deleted","id":"d1"}`)
	}))
	defer server.Close()

	if err := New(server.URL).DeleteDocument(context.Background(), "d1"); err != nil {
		t.Fatalf("DeleteDocument() error = %v", err)
	}
}

func TestDeleteDocumentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	err := New(server.URL).DeleteDocument(context.Background(), "ghost")
	if !domain.IsKind(err, domain.ErrDeleteFailed) {
		t.Fatalf("expected delete failed kind, got %v", err)
	}
	if code, _ := domain.StatusOf(err); code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", code)
	}
}

func TestPingReportsUnreachableBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	if err := New(url).Ping(context.Background()); err == nil {
		t.Fatal("expected error for closed backend")
	}
}

// stubBackend holds uploads so the upload-then-list round trip can be
// exercised against a real HTTP boundary.
type stubBackend struct {
	mu   sync.Mutex
	docs []domain.Document
}

func (s *stubBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/documents", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.mu.Lock()
			defer s.mu.Unlock()
			_ = json.NewEncoder(w).Encode(map[string]any{"documents": s.docs})
		case http.MethodPost:
			_, header, err := r.FormFile("file")
			if err != nil {
				http.Error(w, "file field required", http.StatusBadRequest)
				return
			}
			doc := domain.Document{
				ID:         fmt.Sprintf("doc-%d", len(s.docs)+1),
				Filename:   header.Filename,
				Size:       header.Size,
				ChunkCount: 4,
			}
			s.mu.Lock()
			s.docs = append(s.docs, doc)
			s.mu.Unlock()
			_ = json.NewEncoder(w).Encode(doc)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	return mux
}

func TestUploadThenListRoundTrip(t *testing.T) {
	server := httptest.NewServer((&stubBackend{}).handler())
	defer server.Close()

	client := New(server.URL)
	doc, err := client.UploadDocument(context.Background(), domain.FileUpload{
		Name: "report.txt",
		Size: 11,
		Data: strings.NewReader("lorem ipsum"),
	})
	if err != nil {
		t.Fatalf("UploadDocument() error = %v", err)
	}

	docs, err := client.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	for _, listed := range docs {
		if listed.ID == doc.ID && listed.Filename == "report.txt" {
			return
		}
	}
	t.Fatalf("uploaded document %s missing from listing: %+v", doc.ID, docs)
}
