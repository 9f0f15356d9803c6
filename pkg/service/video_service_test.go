package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestVideoSearchBuildsQueryAndParsesResults(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{"id": {"videoId": "abc123"}, "snippet": {"title": "2025 Nissan Kicks Review", "channelTitle": "Car Channel", "publishedAt": "2025-01-15T00:00:00Z", "thumbnails": {"medium": {"url": "https://img.example/abc123.jpg"}}}},
				{"id": {}, "snippet": {"title": "not a video"}}
			]
		}`))
	}))
	defer server.Close()

	svc := NewYouTubeVideoService("test-key")
	svc.baseURL = server.URL

	result := svc.Search(context.Background(), "Nissan", "Kicks", 2025)

	if result.Error != "" {
		t.Fatalf("Search() error = %q, want none", result.Error)
	}
	if gotQuery != "Nissan Kicks 2025 review" {
		t.Fatalf("query = %q, want %q", gotQuery, "Nissan Kicks 2025 review")
	}
	if len(result.Videos) != 1 {
		t.Fatalf("len(Videos) = %d, want 1 (entries without a videoId are skipped)", len(result.Videos))
	}
	v := result.Videos[0]
	if v.URL != "https://www.youtube.com/watch?v=abc123" {
		t.Fatalf("URL = %q", v.URL)
	}
	if v.Channel != "Car Channel" {
		t.Fatalf("Channel = %q", v.Channel)
	}
}

func TestVideoSearchMissingMakeOrModel(t *testing.T) {
	svc := NewYouTubeVideoService("test-key")

	result := svc.Search(context.Background(), "", "Kicks", 0)
	if result.Error == "" {
		t.Fatal("Search() with empty make returned no error")
	}
}

func TestVideoSearchUnconfiguredKey(t *testing.T) {
	svc := NewYouTubeVideoService("")

	result := svc.Search(context.Background(), "Nissan", "Kicks", 0)
	if !strings.Contains(result.Error, "not configured") {
		t.Fatalf("Search() error = %q, want not configured", result.Error)
	}
}

func TestVideoSearchAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer server.Close()

	svc := NewYouTubeVideoService("test-key")
	svc.baseURL = server.URL

	result := svc.Search(context.Background(), "Nissan", "Rogue", 0)
	if result.Error != "quota exceeded" {
		t.Fatalf("Search() error = %q, want quota exceeded", result.Error)
	}
	if len(result.Videos) != 0 {
		t.Fatalf("Videos = %v, want empty", result.Videos)
	}
}
