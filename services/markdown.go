package services

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// replyMarkdown renders assistant replies. Hard wraps keep the single line
// breaks the canned replies use for their bullet lists.
var replyMarkdown = goldmark.New(
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// RenderReplyHTML converts an assistant reply to HTML for the chat panel.
func RenderReplyHTML(reply string) (string, error) {
	var buf bytes.Buffer
	if err := replyMarkdown.Convert([]byte(reply), &buf); err != nil {
		return "", fmt.Errorf("render reply markdown: %w", err)
	}
	return buf.String(), nil
}
