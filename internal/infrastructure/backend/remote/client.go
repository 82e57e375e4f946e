package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmorenov/ragchat/internal/core/domain"
)

// Client talks to the document-QA backend over its four endpoints.
// It performs exactly one network call per operation and no retries;
// retry policy, if any, belongs to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Ping issues the reachability check used by the availability prober.
// Deadline control is the caller's responsibility via ctx.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/documents", "", nil, "probe")
	return err
}

func (c *Client) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	body, err := c.do(ctx, http.MethodGet, "/documents", "", nil, "list")
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return decodeDocumentList(body)
}

func (c *Client) UploadDocument(ctx context.Context, file domain.FileUpload) (*domain.Document, error) {
	body, contentType, err := encodeMultipartFile(file)
	if err != nil {
		return nil, domain.WrapError(domain.ErrUploadFailed, "upload", err)
	}

	respBody, err := c.do(ctx, http.MethodPost, "/documents", contentType, body, "upload")
	if err != nil {
		return nil, domain.WrapError(domain.ErrUploadFailed, "upload", err)
	}

	var doc domain.Document
	if err := json.Unmarshal(respBody, &doc); err != nil {
		return nil, domain.WrapError(domain.ErrMalformedResponse, "upload", err)
	}
	return &doc, nil
}

func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/documents/"+id, "", nil, "delete")
	if err != nil {
		return domain.WrapError(domain.ErrDeleteFailed, "delete", err)
	}
	return nil
}

func (c *Client) Query(ctx context.Context, documentID, question string) (*domain.QueryResult, error) {
	reqBody, err := json.Marshal(map[string]string{
		"document_id": documentID,
		"question":    question,
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrQueryFailed, "query", err)
	}

	respBody, err := c.do(ctx, http.MethodPost, "/query", "application/json", bytes.NewReader(reqBody), "query")
	if err != nil {
		return nil, domain.WrapError(domain.ErrQueryFailed, "query", err)
	}
	return decodeQueryResult(respBody)
}

// The backend has shipped the listing both as a bare array and as an
// object wrapping it under "documents". Both normalize to one shape.
func decodeDocumentList(data []byte) ([]domain.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var docs []domain.Document
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, domain.WrapError(domain.ErrMalformedResponse, "list", err)
		}
		return docs, nil
	}

	var wrapped struct {
		Documents []domain.Document `json:"documents"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, domain.WrapError(domain.ErrMalformedResponse, "list", err)
	}
	if wrapped.Documents == nil {
		return []domain.Document{}, nil
	}
	return wrapped.Documents, nil
}

// Sources arrive either as bare strings or as objects with chunk_id,
// content and similarity. An absent field normalizes to an empty slice,
// never nil, and the backend's relevance order is kept as-is.
func decodeQueryResult(data []byte) (*domain.QueryResult, error) {
	var payload struct {
		Answer  string            `json:"answer"`
		Sources []json.RawMessage `json:"sources"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, domain.WrapError(domain.ErrMalformedResponse, "query", err)
	}

	evidence := make([]domain.Evidence, 0, len(payload.Sources))
	for _, raw := range payload.Sources {
		item := bytes.TrimSpace(raw)
		if len(item) > 0 && item[0] == '"' {
			var content string
			if err := json.Unmarshal(item, &content); err != nil {
				return nil, domain.WrapError(domain.ErrMalformedResponse, "query sources", err)
			}
			evidence = append(evidence, domain.Evidence{Content: content})
			continue
		}
		var ev domain.Evidence
		if err := json.Unmarshal(item, &ev); err != nil {
			return nil, domain.WrapError(domain.ErrMalformedResponse, "query sources", err)
		}
		evidence = append(evidence, ev)
	}

	return &domain.QueryResult{
		Answer:   payload.Answer,
		Evidence: evidence,
	}, nil
}
