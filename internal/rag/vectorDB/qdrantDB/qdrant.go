package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
	"github.com/akolanti/LegalDocAPI/internal/metrics"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

const textField = "text"

type ClientHolder struct {
	QObj           *qdrant.Client
	collectionName string
	logger         *logger_i.Logger

	// the vector size is only known once the first document is encoded
	mu        sync.Mutex
	dimension uint64
}

// NewClient connects to qdrant. The collection is created on the first upsert.
func NewClient(ctx context.Context, host string, port int) (*ClientHolder, error) {
	logger := logger_i.NewLogger("Qdrant")
	if host == "" {
		return nil, errors.New("no qdrant host configured")
	}
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil, err
	}
	if _, err := client.HealthCheck(ctx); err != nil {
		logger.Error("qdrant health check failed", "error", err)
		_ = client.Close()
		return nil, err
	}
	logger.Info("Connected to Qdrant", "host", host, "port", port)
	return &ClientHolder{QObj: client, collectionName: config.QdrantCollection, logger: logger}, nil
}

func (db *ClientHolder) Close() {
	db.logger.Info("Shutting down Qdrant")
	if err := db.QObj.Close(); err != nil {
		db.logger.Error("could not close Qdrant: ", "error:", err)
	}
}

// ReplaceDocument drops every point of docId before upserting the new vectors.
func (db *ClientHolder) ReplaceDocument(ctx context.Context, docId string, sentences []string, vectors [][]float32) error {
	if len(sentences) != len(vectors) {
		return fmt.Errorf("mismatch: got %d sentences but %d vectors", len(sentences), len(vectors))
	}
	if len(vectors) == 0 {
		return nil
	}
	log := db.logger.WithContext(ctx).With("doc_id", docId)
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("qdrant_upsert", time.Since(start)) }()

	if err := db.ensureCollection(ctx, uint64(len(vectors[0]))); err != nil {
		return err
	}

	_, err := db.QObj.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: db.collectionName,
		Points:         qdrant.NewPointsSelectorFilter(docFilter(docId)),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant delete failed: %w", err)
	}

	points := buildPoints(docId, sentences, vectors)
	for startIdx := 0; startIdx < len(points); startIdx += config.QdrantUpsertBatch {
		end := min(startIdx+config.QdrantUpsertBatch, len(points))
		_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: db.collectionName,
			Points:         points[startIdx:end],
			Wait:           qdrant.PtrOf(true),
		})
		if err != nil {
			return fmt.Errorf("qdrant upsert failed: %w", err)
		}
	}
	log.Debug("upserted sentence vectors", "points", len(points))
	return nil
}

func (db *ClientHolder) Search(ctx context.Context, docId string, vector []float32, k int) ([]documentModel.Hit, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("qdrant_query", time.Since(start)) }()

	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: db.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Filter:         docFilter(docId),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		db.logger.WithContext(ctx).Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}
	return hitsFromPoints(result), nil
}

func (db *ClientHolder) ensureCollection(ctx context.Context, dimension uint64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.dimension != 0 {
		if db.dimension != dimension {
			return fmt.Errorf("vector size %d does not match collection size %d", dimension, db.dimension)
		}
		return nil
	}
	if err := createCollection(ctx, db.QObj, db.collectionName, dimension); err != nil {
		return err
	}
	_, err := db.QObj.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: db.collectionName,
		FieldName:      config.QdrantDocIdField,
		FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		// filtering still works without the payload index, only slower
		db.logger.Warn("could not create payload index", "error", err)
	}
	db.dimension = dimension
	return nil
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string, dimension uint64) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func docFilter(docId string) *qdrant.Filter {
	return &qdrant.Filter{
		Must: []*qdrant.Condition{qdrant.NewMatch(config.QdrantDocIdField, docId)},
	}
}

func buildPoints(docId string, sentences []string, vectors [][]float32) []*qdrant.PointStruct {
	points := make([]*qdrant.PointStruct, len(sentences))
	for i, sentence := range sentences {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.NewString()),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				config.QdrantDocIdField:    docId,
				config.QdrantSentenceField: i,
				textField:                  sentence,
			}),
		}
	}
	return points
}

func hitsFromPoints(points []*qdrant.ScoredPoint) []documentModel.Hit {
	hits := make([]documentModel.Hit, 0, len(points))
	for _, p := range points {
		hits = append(hits, documentModel.Hit{
			Index: int(p.Payload[config.QdrantSentenceField].GetIntegerValue()),
			Text:  p.Payload[textField].GetStringValue(),
			Score: float64(p.Score),
		})
	}
	return hits
}
