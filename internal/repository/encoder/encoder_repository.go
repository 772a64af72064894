package encoder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"offerPilot/business/recommend"
	"offerPilot/domain"
)

// Config carries the connection settings for the sentence-encoder sidecar.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Repository calls an external sentence-encoder service over HTTP. The
// service accepts a batch of texts and returns one dense vector per text,
// all with the same dimensionality.
type Repository struct {
	cfg    Config
	client *http.Client
}

var _ recommend.Embedder = (*Repository)(nil)

func NewRepository(cfg Config) *Repository {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Repository{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type embedRequest struct {
	Texts []string `json:"texts"`
}

type embedResponse struct {
	Vectors [][]float64 `json:"vectors"`
}

func (r *Repository) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	body, err := json.Marshal(embedRequest{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build embed request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")
	if r.cfg.APIKey != "" {
		req.Header.Add("Authorization", "Bearer "+r.cfg.APIKey)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncoderUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		resBody, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrEncoderUnavailable, res.StatusCode, string(resBody))
	}

	var decoded embedResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrEncoderUnavailable, err)
	}

	if len(decoded.Vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", domain.ErrEncoderUnavailable, len(decoded.Vectors), len(texts))
	}

	for i := range decoded.Vectors {
		normalize(decoded.Vectors[i])
	}

	return decoded.Vectors, nil
}

// normalize rescales v to unit length in place so that dot products of any
// two vectors land in [-1, 1]. Zero vectors are left untouched.
func normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}

	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}
