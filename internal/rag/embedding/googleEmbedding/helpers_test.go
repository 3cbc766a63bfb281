package googleEmbedding

import (
	"errors"
	"testing"

	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestDoRetry(t *testing.T) {
	log := logger_i.NewLogger("google_embedding_test")
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"grpc rate limit", status.Error(codes.ResourceExhausted, "quota"), true},
		{"grpc other", status.Error(codes.InvalidArgument, "bad"), false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doRetry(tt.err, log); got != tt.want {
				t.Errorf("doRetry got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetContent(t *testing.T) {
	content := getContent([]string{"a", "b"})
	if len(content) != 2 || content[1].Parts[0].Text != "b" {
		t.Errorf("unexpected content %+v", content)
	}
}
