package api

import "time"

// soft errors keep the 200 status the browser client expects
const (
	SoftDocumentNotFound = "Document not found"
	SoftDocNotFound      = "doc not found"
	SoftNoSentences      = "no sentences"
	SoftNotIndexed       = "Document not indexed. Call /index first."
)

type SoftError struct {
	Error string `json:"error" example:"Document not found"`
}

type ErrorResponse struct {
	Id    string        `json:"id,omitempty" example:"3f2a9c1e"`
	Error OutgoingError `json:"error"`
}

type OutgoingError struct {
	Code    int    `json:"code" example:"500"`
	Message string `json:"message" example:"Internal Server Error"`
	Retry   bool   `json:"can_retry" example:"true"`
}

// responses---------------------

type UploadResponse struct {
	DocId string `json:"doc_id" example:"3f2a9c1e"`
	Title string `json:"title" example:"lease.pdf"`
	Chars int    `json:"chars" example:"18234"`
}

// SummarizeResponse.Summary is a paragraph for abstractive summaries and a list of sentences otherwise.
type SummarizeResponse struct {
	DocId   string `json:"doc_id" example:"3f2a9c1e"`
	Summary any    `json:"summary" swaggertype:"string"`
}

type IndexResponse struct {
	DocId     string `json:"doc_id" example:"3f2a9c1e"`
	Sentences int    `json:"sentences" example:"214"`
	Retriever string `json:"retriever" example:"sbert" enums:"sbert,tfidf"`
	Note      string `json:"note,omitempty" example:"dense encoder unavailable"`
}

type Citation struct {
	I     int     `json:"i" example:"12"`
	Score float64 `json:"score" example:"0.734"`
	Text  string  `json:"text"`
}

type AskResponse struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
	Cached    bool       `json:"cached,omitempty"`
}

type SearchResponse struct {
	DocId     string     `json:"doc_id"`
	Retriever string     `json:"retriever" enums:"sbert,tfidf"`
	Hits      []Citation `json:"hits"`
}

type RiskClause struct {
	I    int     `json:"i" example:"7"`
	Text string  `json:"text"`
	Risk float64 `json:"risk" example:"0.6"`
}

type RiskResponse struct {
	DocId   string       `json:"doc_id"`
	Clauses []RiskClause `json:"clauses"`
}

type DocumentInfo struct {
	DocId     string    `json:"doc_id"`
	Title     string    `json:"title"`
	Chars     int       `json:"chars"`
	Sentences int       `json:"sentences"`
	Chunks    int       `json:"chunks"`
	Indexed   bool      `json:"indexed"`
	Retriever string    `json:"retriever,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type DocumentListResponse struct {
	Documents []DocumentInfo `json:"documents"`
}

type Exchange struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"asked_at"`
}

type HistoryResponse struct {
	DocId     string     `json:"doc_id"`
	Exchanges []Exchange `json:"exchanges"`
}

type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Documents int    `json:"documents"`
}

// requests---------------------

type SummarizeRequest struct {
	DocId string `json:"doc_id" validate:"required"`
	Mode  string `json:"mode" example:"abstractive" enums:"abstractive,extractive"`
}

type IndexRequest struct {
	DocId string `json:"doc_id" validate:"required"`
}

type AskRequest struct {
	DocId    string `json:"doc_id" validate:"required"`
	Question string `json:"question" validate:"required"`
	K        int    `json:"k" example:"5"`
}

type SearchRequest struct {
	DocId string `json:"doc_id" validate:"required"`
	Query string `json:"query" validate:"required"`
	K     int    `json:"k" example:"5"`
}

type RiskRequest struct {
	DocId     string  `json:"doc_id" validate:"required"`
	Threshold float64 `json:"threshold" example:"0.5"`
}
