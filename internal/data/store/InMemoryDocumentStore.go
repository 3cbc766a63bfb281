package store

import (
	"context"
	"sort"
	"sync"

	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
	"github.com/akolanti/LegalDocAPI/internal/metrics"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem DocumentStore")

// InMemoryDocumentStore owns every uploaded document for the life of the process.
type InMemoryDocumentStore struct {
	docMutex *sync.RWMutex
	docMap   map[string]documentModel.Document
}

func InitInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		docMutex: new(sync.RWMutex),
		docMap:   make(map[string]documentModel.Document),
	}
}

func (store *InMemoryDocumentStore) Save(ctx context.Context, doc documentModel.Document) error {
	store.docMutex.Lock()
	defer store.docMutex.Unlock()
	store.docMap[doc.Id] = doc
	metrics.SetDocumentsInStore(len(store.docMap))
	inMemLogger.WithContext(ctx).Info("Saved document to store", "doc_id", doc.Id, "sentences", len(doc.Sentences))
	return nil
}

// Get returns a copy of the record. Callers never see a half-replaced index.
func (store *InMemoryDocumentStore) Get(ctx context.Context, docId string) (documentModel.Document, bool) {
	store.docMutex.RLock()
	defer store.docMutex.RUnlock()
	result, found := store.docMap[docId]
	return result, found
}

// SetIndex replaces any previous index of the document.
func (store *InMemoryDocumentStore) SetIndex(ctx context.Context, docId string, index documentModel.SentenceIndex) error {
	store.docMutex.Lock()
	defer store.docMutex.Unlock()
	doc, found := store.docMap[docId]
	if !found {
		return documentModel.ErrDocumentNotFound
	}
	doc.Index = index
	store.docMap[docId] = doc
	return nil
}

// List returns every document, oldest upload first.
func (store *InMemoryDocumentStore) List(ctx context.Context) []documentModel.Document {
	store.docMutex.RLock()
	docs := make([]documentModel.Document, 0, len(store.docMap))
	for _, doc := range store.docMap {
		docs = append(docs, doc)
	}
	store.docMutex.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].Id < docs[j].Id
		}
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
	return docs
}
