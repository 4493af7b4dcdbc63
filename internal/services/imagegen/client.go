// Package imagegen renders a photographic preview of a generated dish.
package imagegen

import (
	"context"
	"encoding/base64"
	"time"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/httpclient"
	"github.com/culinai/chef/internal/metrics"
	"github.com/culinai/chef/internal/services/ai"
	"github.com/culinai/chef/internal/services/gemini"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"
)

const (
	DefaultModel = "gemini-2.5-flash-image"
	aspectRatio  = "1:1"
)

// Size is the requested render size. It is validated and otherwise ignored;
// the service always asks for a square image at the model's default size.
type Size string

const (
	Size1K Size = "1K"
	Size2K Size = "2K"
	Size4K Size = "4K"
)

func (s Size) Valid() bool {
	switch s {
	case Size1K, Size2K, Size4K:
		return true
	}
	return false
}

// Preview is a rendered image, base64 encoded.
type Preview struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// DataURL renders the preview as an inline data URL.
func (p Preview) DataURL() string {
	return "data:" + p.MIMEType + ";base64," + p.Data
}

type Client struct {
	models gemini.ContentGenerator
	model  string
}

// NewClient creates an image client. A nil generator means no API key was
// configured.
func NewClient(models gemini.ContentGenerator, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{models: models, model: model}
}

func (c *Client) RenderPreview(ctx context.Context, title, description string, size Size) (Preview, error) {
	if size == "" {
		size = Size1K
	}
	if !size.Valid() {
		return Preview{}, apperrors.NewValidationError("size must be 1K, 2K or 4K", "INVALID_SIZE", "Use one of 1K, 2K or 4K.")
	}
	if c.models == nil {
		return Preview{}, apperrors.NewConfigurationError("GEMINI_API_KEY is not set", "GEMINI_KEY_MISSING")
	}

	outcome := "success"
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		metrics.ImagePreviewsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
		attrs := metric.WithAttributes(attribute.String("provider", gemini.Provider))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, attrs)
		metrics.ExternalAPIDuration.Record(ctx, duration, attrs)
	}()

	resp, err := c.models.GenerateContent(
		httpclient.WithProvider(ctx, gemini.Provider),
		c.model,
		genai.Text(ai.BuildImagePrompt(title, description)),
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"IMAGE"},
			ImageConfig:        &genai.ImageConfig{AspectRatio: aspectRatio},
		},
	)
	if err != nil {
		outcome = "transport_error"
		return Preview{}, apperrors.NewTransportError("image request failed", "IMAGE_REQUEST_FAILED", err)
	}

	blob := gemini.FirstInlineImage(resp)
	if blob == nil {
		outcome = "no_image"
		return Preview{}, apperrors.NewMalformedResponseError("no image generated", "NO_IMAGE", nil)
	}

	return Preview{
		MIMEType: blob.MIMEType,
		Data:     base64.StdEncoding.EncodeToString(blob.Data),
	}, nil
}
