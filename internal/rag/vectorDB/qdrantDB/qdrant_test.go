package qdrantDB

import (
	"context"
	"testing"

	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/qdrant/go-client/qdrant"
)

func TestBuildPoints_Payload(t *testing.T) {
	points := buildPoints("abc12345", []string{"first", "second"}, [][]float32{{1, 0}, {0, 1}})
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	p := points[1]
	if got := p.Payload[config.QdrantDocIdField].GetStringValue(); got != "abc12345" {
		t.Errorf("doc id got %s", got)
	}
	if got := p.Payload[config.QdrantSentenceField].GetIntegerValue(); got != 1 {
		t.Errorf("sentence index got %d", got)
	}
	if got := p.Payload[textField].GetStringValue(); got != "second" {
		t.Errorf("text got %s", got)
	}
	if points[0].Id.GetUuid() == points[1].Id.GetUuid() {
		t.Error("point ids must be unique")
	}
}

func TestHitsFromPoints(t *testing.T) {
	hits := hitsFromPoints([]*qdrant.ScoredPoint{
		{Score: 0.9, Payload: qdrant.NewValueMap(map[string]any{config.QdrantSentenceField: 3, textField: "three"})},
		{Score: 0.4, Payload: qdrant.NewValueMap(map[string]any{config.QdrantSentenceField: 0, textField: "zero"})},
	})
	if len(hits) != 2 || hits[0].Index != 3 || hits[0].Text != "three" {
		t.Fatalf("unexpected hits %+v", hits)
	}
	if hits[0].Score < 0.899 || hits[0].Score > 0.901 {
		t.Errorf("score got %v", hits[0].Score)
	}
}

func TestNewClient_NoHost(t *testing.T) {
	if _, err := NewClient(context.Background(), "", config.QdrantPort); err == nil {
		t.Error("expected an error without a host")
	}
}
