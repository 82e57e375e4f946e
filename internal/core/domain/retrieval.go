package domain

type Evidence struct {
	ChunkID    string  `json:"chunk_id,omitempty"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// QueryResult is the canonical answer shape. Evidence keeps the backend's
// relevance-descending order and is never nil.
type QueryResult struct {
	Answer   string     `json:"answer"`
	Evidence []Evidence `json:"sources"`
}
