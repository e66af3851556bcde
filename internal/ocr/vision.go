package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/healthease/healthease-api/internal/config"
)

// VisionClient calls the Google Cloud Vision images:annotate endpoint with
// DOCUMENT_TEXT_DETECTION. A circuit breaker keeps report uploads from
// piling onto a degraded vision API.
type VisionClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[string]
	log      *zap.Logger
}

func NewVisionClient(cfg config.OCRConfig, log *zap.Logger) *VisionClient {
	settings := gobreaker.Settings{
		Name:     "vision-api",
		Interval: cfg.BreakerInterval,
		Timeout:  cfg.BreakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMaxFails
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("ocr circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &VisionClient{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
		breaker:  gobreaker.NewCircuitBreaker[string](settings),
		log:      log,
	}
}

type annotateRequest struct {
	Requests []annotateEntry `json:"requests"`
}

type annotateEntry struct {
	Image    annotateImage     `json:"image"`
	Features []annotateFeature `json:"features"`
}

type annotateImage struct {
	Content string `json:"content"`
}

type annotateFeature struct {
	Type string `json:"type"`
}

type annotateResponse struct {
	Responses []struct {
		FullTextAnnotation *struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

func (c *VisionClient) ExtractText(ctx context.Context, content []byte, contentType string) (string, error) {
	text, err := c.breaker.Execute(func() (string, error) {
		return c.annotate(ctx, content)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return "", ErrUnavailable
		}
		return "", err
	}
	return text, nil
}

func (c *VisionClient) annotate(ctx context.Context, content []byte) (string, error) {
	start := time.Now()

	body, err := json.Marshal(annotateRequest{
		Requests: []annotateEntry{{
			Image:    annotateImage{Content: base64.StdEncoding.EncodeToString(content)},
			Features: []annotateFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling annotate request: %w", err)
	}

	url := c.endpoint
	if c.apiKey != "" {
		url += "?key=" + c.apiKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building annotate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling vision api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("vision api returned %d: %s", resp.StatusCode, snippet)
	}

	var parsed annotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding annotate response: %w", err)
	}

	c.log.Debug("vision api call completed", zap.Duration("duration", time.Since(start)))

	if len(parsed.Responses) == 0 {
		return "", nil
	}
	r := parsed.Responses[0]
	if r.Error != nil {
		return "", fmt.Errorf("vision api error %d: %s", r.Error.Code, r.Error.Message)
	}
	if r.FullTextAnnotation == nil {
		// A blank page is a valid document.
		return "", nil
	}
	return r.FullTextAnnotation.Text, nil
}
