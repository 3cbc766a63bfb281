package documentModel

import (
	"context"
	"errors"
	"time"
)

type RetrieverKind string

type SummaryMode string

const (
	RetrieverDense  RetrieverKind = "sbert"
	RetrieverSparse RetrieverKind = "tfidf"

	SummaryAbstractive SummaryMode = "abstractive"
	SummaryExtractive  SummaryMode = "extractive"
)

var (
	ErrDocumentNotFound     = errors.New("document not found")
	ErrNotIndexed           = errors.New("document not indexed")
	ErrNoSentences          = errors.New("no sentences")
	ErrEncoderUnavailable   = errors.New("dense encoder unavailable")
	ErrGeneratorUnavailable = errors.New("generator unavailable")
)

// Document is everything derived from one upload. Index is nil until the document is indexed.
type Document struct {
	Id        string        `json:"doc_id"`
	Title     string        `json:"title"`
	Text      string        `json:"text"`
	Sentences []string      `json:"sentences"`
	Chunks    []string      `json:"chunks"`
	CreatedAt time.Time     `json:"created_at"`
	Index     SentenceIndex `json:"-"`
}

type Hit struct {
	Index int     `json:"i"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type RiskClause struct {
	Index int     `json:"i"`
	Text  string  `json:"text"`
	Risk  float64 `json:"risk"`
}

// SentenceIndex answers nearest-sentence queries for one document.
type SentenceIndex interface {
	Method() RetrieverKind
	Size() int
	BuiltAt() time.Time
	TopK(ctx context.Context, question string, k int) ([]Hit, error)
}

type DocumentStore interface {
	Save(ctx context.Context, doc Document) error
	Get(ctx context.Context, docId string) (Document, bool)
	SetIndex(ctx context.Context, docId string, index SentenceIndex) error
	List(ctx context.Context) []Document
}

type CachedAnswer struct {
	Answer    string `json:"answer"`
	Citations []Hit  `json:"citations"`
}

type AnswerCache interface {
	GetAnswer(ctx context.Context, key string) (CachedAnswer, bool)
	SaveAnswer(ctx context.Context, key string, answer CachedAnswer) error
}

// Exchange is one answered question, kept so clients can show recent questions per document.
type Exchange struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"asked_at"`
}

type HistoryStore interface {
	Append(ctx context.Context, docId string, exchange Exchange) error
	// Recent returns the latest exchanges, newest first.
	Recent(ctx context.Context, docId string) ([]Exchange, error)
}
