package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHttpStatusRecorder_CapturesStatus(t *testing.T) {
	w := httptest.NewRecorder()
	rec := &HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK}

	rec.WriteHeader(http.StatusTeapot)

	if rec.Status != http.StatusTeapot {
		t.Errorf("recorded status got %d", rec.Status)
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("underlying writer got %d", w.Code)
	}
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(indexBuilds.WithLabelValues("tfidf"))
	CountIndexBuild("tfidf")
	if got := testutil.ToFloat64(indexBuilds.WithLabelValues("tfidf")); got != before+1 {
		t.Errorf("index builds got %v, want %v", got, before+1)
	}

	SetDocumentsInStore(3)
	if got := testutil.ToFloat64(documentsInStore); got != 3 {
		t.Errorf("documents gauge got %v", got)
	}

	hits := testutil.ToFloat64(answerCacheLookups.WithLabelValues("hit"))
	CountCacheLookup(true)
	if got := testutil.ToFloat64(answerCacheLookups.WithLabelValues("hit")); got != hits+1 {
		t.Errorf("cache hits got %v", got)
	}
}
