package dto

// ChatRequest is one user turn. K falls back to the configured default
// (12) when the caller omits it.
type ChatRequest struct {
	Question string `json:"question"`
	K        int    `json:"k"`
}

// RetrievedChunk is one ranked row from the vector store, ascending by
// cosine distance (closer = more relevant). Titles are not deduplicated.
type RetrievedChunk struct {
	Content  string  `json:"content"`
	Title    string  `json:"title"`
	Distance float64 `json:"distance"`
}

type ReadyResponse struct {
	Status string `json:"status"`
}
