package bodycomp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ModelInput is what a trained body-analysis model consumes.
type ModelInput struct {
	Image    []byte    `json:"image"`
	Features []float64 `json:"features"`
}

// ModelProvider runs a trained body-analysis model. Outputs are, in order:
// body fat fraction, muscle mass fraction, visceral fat index, body type score.
type ModelProvider interface {
	Predict(ctx context.Context, in ModelInput) ([]float64, error)
}

const modelOutputs = 4

// Feature normalization ranges.
const (
	maxAge      = 100.0
	maxWeightKG = 200.0
	maxHeightCM = 250.0
)

// ModelStage feeds the model and scales its outputs. It needs both a provider
// and an image; otherwise it reports ErrProviderUnavailable.
type ModelStage struct {
	Provider ModelProvider
}

func (m ModelStage) TryEstimate(ctx context.Context, in Input) (Result, error) {
	if m.Provider == nil || len(in.Image) == 0 {
		return Result{}, ErrProviderUnavailable
	}

	out, err := m.Provider.Predict(ctx, ModelInput{Image: in.Image, Features: features(in)})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if len(out) < modelOutputs {
		return Result{}, fmt.Errorf("%w: model returned %d outputs, want %d", ErrProviderUnavailable, len(out), modelOutputs)
	}

	r := Result{
		BodyFatPercent:    out[0] * 100,
		MuscleMassPercent: out[1] * 100,
		VisceralFat:       out[2],
		BodyType:          BodyTypeFromScore(out[3]),
		Method:            MethodModel,
	}
	return finish(r, in.Stats), nil
}

// BodyTypeFromScore maps the model's [0,1] body type output.
func BodyTypeFromScore(score float64) BodyType {
	switch {
	case score < 0.33:
		return Ectomorph
	case score < 0.66:
		return Mesomorph
	default:
		return Endomorph
	}
}

// features normalizes user stats into [0,1] and appends the raw measurements.
func features(in Input) []float64 {
	s := in.Stats
	male := 0.0
	if s.Gender.IsMale() {
		male = 1
	}
	f := []float64{float64(s.Age) / maxAge, s.WeightKG / maxWeightKG, s.HeightCM / maxHeightCM, male}
	return append(f, in.Measurements...)
}

/* ─── HTTP provider ──────────────────────────────────────────────────── */

// HTTPModel calls a model served over HTTP: POST {baseURL}/predict with a
// ModelInput body, answered by {"outputs": [...]}.
type HTTPModel struct {
	baseURL string
	client  *http.Client
}

// NewHTTPModel returns a provider for the model server at baseURL.
func NewHTTPModel(baseURL string) *HTTPModel {
	return &HTTPModel{baseURL: baseURL, client: &http.Client{Timeout: 20 * time.Second}}
}

func (h *HTTPModel) Predict(ctx context.Context, in ModelInput) ([]float64, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var result struct {
		Outputs []float64 `json:"outputs"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return result.Outputs, nil
}
