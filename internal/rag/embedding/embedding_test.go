package embedding

import (
	"context"
	"errors"
	"math"
	"testing"
)

type mockEncoder struct {
	EncodeFunc func(ctx context.Context, texts []string) ([][]float32, error)
	calls      int
}

func (m *mockEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls++
	return m.EncodeFunc(ctx, texts)
}

func (m *mockEncoder) Model() string { return "mock" }

func TestEncodeBatched_PreservesOrder(t *testing.T) {
	enc := &mockEncoder{EncodeFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, s := range texts {
			out[i] = []float32{float32(len(s))}
		}
		return out, nil
	}}

	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}
	vectors, err := EncodeBatched(context.Background(), enc, texts, 2)
	if err != nil {
		t.Fatalf("EncodeBatched failed: %v", err)
	}
	if enc.calls != 3 {
		t.Errorf("expected 3 batches, got %d", enc.calls)
	}
	for i, v := range vectors {
		if int(v[0]) != i+1 {
			t.Errorf("vector %d out of order: %v", i, v)
		}
	}
}

func TestEncodeBatched_CountMismatch(t *testing.T) {
	enc := &mockEncoder{EncodeFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1}}, nil
	}}
	if _, err := EncodeBatched(context.Background(), enc, []string{"a", "b"}, 10); err == nil {
		t.Error("expected an error when the encoder drops vectors")
	}
}

func TestEncodeBatched_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	enc := &mockEncoder{EncodeFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, boom
	}}
	if _, err := EncodeBatched(context.Background(), enc, []string{"a"}, 1); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	v := Normalize([]float32{3, 4})
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Errorf("unexpected normalised vector %v", v)
	}
	if math.Abs(Dot(v, v)-1) > 1e-6 {
		t.Errorf("unit vector should have dot 1, got %v", Dot(v, v))
	}

	zero := Normalize([]float32{0, 0})
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero vector changed: %v", zero)
	}
}
