package utils

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// VideoMetadata is the subset of YouTube oEmbed data the app cares about
type VideoMetadata struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

const youtubeOEmbedURL = "https://www.youtube.com/oembed"

// FetchYouTubeMetadata looks up a video's title and thumbnail via the public
// oEmbed endpoint. No API key required; private or removed videos return 4xx.
func FetchYouTubeMetadata(videoURL string) (*VideoMetadata, error) {
	client := resty.New().SetTimeout(10 * time.Second)

	var meta VideoMetadata
	resp, err := client.R().
		SetQueryParams(map[string]string{
			"url":    videoURL,
			"format": "json",
		}).
		SetResult(&meta).
		Get(youtubeOEmbedURL)
	if err != nil {
		return nil, fmt.Errorf("oembed request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("oembed lookup failed with status %d", resp.StatusCode())
	}

	return &meta, nil
}
