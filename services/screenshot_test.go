package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/vibe-gallery-backend/errs"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func newMicrolinkServer(t *testing.T, metadataStatus int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://sorting-visualizer-edu.vercel.app", r.URL.Query().Get("url"))
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))

		if r.URL.Query().Get("screenshot") == "true" {
			assert.Equal(t, `{"width":1280,"height":800}`, r.URL.Query().Get("viewport"))
			writeJSON(t, w, http.StatusOK, map[string]any{
				"status": "success",
				"data": map[string]any{
					"screenshot": map[string]any{"url": "https://cdn.microlink.io/shot.png"},
				},
			})
			return
		}

		if metadataStatus != http.StatusOK {
			writeJSON(t, w, metadataStatus, map[string]any{"status": "fail", "message": "boom"})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"status": "success",
			"data": map[string]any{
				"title":       "정렬 알고리즘 시각화",
				"description": "정렬 비교",
				"publisher":   "Vercel",
				"image":       map[string]any{"url": "https://example.com/og.png"},
				"logo":        map[string]any{"url": "https://example.com/logo.png"},
			},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestScreenshotClient_CaptureScreenshot(t *testing.T) {
	server := newMicrolinkServer(t, http.StatusOK)
	client := NewScreenshotClient(server.URL, "secret", time.Second)

	shot, err := client.CaptureScreenshot(context.Background(), "https://sorting-visualizer-edu.vercel.app")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.microlink.io/shot.png", shot)
}

func TestScreenshotClient_FetchMetadata(t *testing.T) {
	server := newMicrolinkServer(t, http.StatusOK)
	client := NewScreenshotClient(server.URL, "secret", time.Second)

	meta, err := client.FetchMetadata(context.Background(), "https://sorting-visualizer-edu.vercel.app")
	require.NoError(t, err)
	assert.Equal(t, &URLMetadata{
		Title:       "정렬 알고리즘 시각화",
		Description: "정렬 비교",
		Image:       "https://example.com/og.png",
		Logo:        "https://example.com/logo.png",
		Publisher:   "Vercel",
	}, meta)
}

func TestScreenshotClient_UpstreamFailure(t *testing.T) {
	server := newMicrolinkServer(t, http.StatusServiceUnavailable)
	client := NewScreenshotClient(server.URL, "secret", time.Second)

	_, err := client.FetchMetadata(context.Background(), "https://sorting-visualizer-edu.vercel.app")
	require.Error(t, err)
	assert.True(t, errs.IsServiceUnavailable(err))

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestScreenshotClient_PreviewToleratesPartialFailure(t *testing.T) {
	server := newMicrolinkServer(t, http.StatusInternalServerError)
	client := NewScreenshotClient(server.URL, "secret", time.Second)

	preview := client.Preview(context.Background(), "https://sorting-visualizer-edu.vercel.app")
	assert.Equal(t, "https://cdn.microlink.io/shot.png", preview.ScreenshotURL)
	assert.Nil(t, preview.Metadata)
}

func TestScreenshotClient_PreviewBothParts(t *testing.T) {
	server := newMicrolinkServer(t, http.StatusOK)
	client := NewScreenshotClient(server.URL, "secret", time.Second)

	preview := client.Preview(context.Background(), "https://sorting-visualizer-edu.vercel.app")
	assert.Equal(t, "https://cdn.microlink.io/shot.png", preview.ScreenshotURL)
	require.NotNil(t, preview.Metadata)
	assert.Equal(t, "정렬 알고리즘 시각화", preview.Metadata.Title)
}

func TestScreenshotClient_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()
	client := NewScreenshotClient(server.URL, "", 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.CaptureScreenshot(ctx, "https://example.com")
	require.Error(t, err)
	assert.True(t, errs.IsTimeout(err))
}

func TestDefaultThumbnailURL(t *testing.T) {
	assert.Equal(t, "https://picsum.photos/seed/quiz/400/300", DefaultThumbnailURL("quiz"))
	assert.Equal(t, "https://picsum.photos/seed/AI%20%EC%B1%97%EB%B4%87/400/300", DefaultThumbnailURL("AI 챗봇"))
}
