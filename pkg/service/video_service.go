package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dealerdesk/dealerdesk/pkg/models"
	"github.com/dealerdesk/dealerdesk/pkg/utils"
)

// VideoSearcher finds review videos for a car. Implementations must never
// panic; failures are reported inside the result payload so tool dispatch
// can embed them in the conversation.
type VideoSearcher interface {
	Search(ctx context.Context, carMake, carModel string, year int) models.VideoSearchResult
}

const (
	youtubeSearchURL = "https://www.googleapis.com/youtube/v3/search"
	maxVideoResults  = 5
)

// YouTubeVideoService searches review videos through the YouTube Data API v3.
type YouTubeVideoService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewYouTubeVideoService creates a video searcher with the given API key.
func NewYouTubeVideoService(apiKey string) *YouTubeVideoService {
	return &YouTubeVideoService{
		apiKey:  apiKey,
		baseURL: youtubeSearchURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  utils.GetLogger(),
	}
}

// youtubeSearchResponse is the subset of the API response we consume.
type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Search queries YouTube for review videos of the given car. Transport or
// API errors are returned inside the result payload, never as a Go error.
func (s *YouTubeVideoService) Search(ctx context.Context, carMake, carModel string, year int) models.VideoSearchResult {
	if carMake == "" || carModel == "" {
		return models.VideoSearchResult{Videos: []models.Video{}, Error: "car make and model are required"}
	}
	if s.apiKey == "" {
		return models.VideoSearchResult{Videos: []models.Video{}, Error: "video search is not configured"}
	}

	query := carMake + " " + carModel
	if year > 0 {
		query += " " + strconv.Itoa(year)
	}
	query += " review"

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxVideoResults))
	params.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return models.VideoSearchResult{Videos: []models.Video{}, Error: fmt.Sprintf("build request: %v", err)}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("video search request failed", "error", err)
		return models.VideoSearchResult{Videos: []models.Video{}, Error: fmt.Sprintf("video search failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return models.VideoSearchResult{Videos: []models.Video{}, Error: fmt.Sprintf("read response: %v", err)}
	}

	var parsed youtubeSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return models.VideoSearchResult{Videos: []models.Video{}, Error: fmt.Sprintf("decode response: %v", err)}
	}
	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("video search returned status %d", resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		s.logger.Warn("video search API error", "status", resp.StatusCode, "message", msg)
		return models.VideoSearchResult{Videos: []models.Video{}, Error: msg}
	}

	videos := make([]models.Video, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, models.Video{
			Title:       item.Snippet.Title,
			URL:         "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			Channel:     item.Snippet.ChannelTitle,
			Thumbnail:   item.Snippet.Thumbnails.Medium.URL,
			PublishedAt: item.Snippet.PublishedAt,
		})
	}

	return models.VideoSearchResult{Videos: videos}
}
