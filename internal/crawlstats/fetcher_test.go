package crawlstats

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crawltrends/crawltrends/internal/logging"
	"github.com/rs/zerolog"
)

func testLogger() *logging.Logger {
	return logging.NewWithWriter(io.Discard, zerolog.Disabled)
}

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	client := NewClient(testLogger(), 5*time.Second)

	data, err := client.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != sampleCSV {
		t.Errorf("Fetched body does not match served body")
	}
}

func TestClient_Fetch_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(testLogger(), 5*time.Second)

	if _, err := client.Fetch(context.Background(), server.URL); err == nil {
		t.Error("Expected error for non-200 status")
	}
}

func TestClient_Fetch_Unreachable(t *testing.T) {
	client := NewClient(testLogger(), time.Second)

	if _, err := client.Fetch(context.Background(), "http://127.0.0.1:1/stats.csv"); err == nil {
		t.Error("Expected error for unreachable source")
	}
}

func TestClient_Fetch_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	client := NewClient(testLogger(), 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Fetch(ctx, server.URL); err == nil {
		t.Error("Expected error for canceled context")
	}
}
