package similarity

import (
	"context"
	"net/http"
	"time"

	"kycgate/internal/kyc/evidence"
)

// Inference is the model-serving contract: it returns raw similarity outputs
// for a document and selfie tensor pair.
type Inference interface {
	Predict(ctx context.Context, document, selfie Tensor) ([]float32, error)
}

// Unavailable is used when no inference endpoint is configured.
type Unavailable struct{}

func (Unavailable) Predict(context.Context, Tensor, Tensor) ([]float32, error) {
	return nil, evidence.NewStageError(evidence.StageSimilarity, evidence.CategoryUnconfigured, "no inference endpoint configured", nil)
}

// HTTPInference posts both tensors to a model-serving endpoint.
type HTTPInference struct {
	endpoint string
	client   evidence.HTTPDoer
	timeout  time.Duration
}

type HTTPOption func(*HTTPInference)

func WithHTTPClient(c evidence.HTTPDoer) HTTPOption {
	return func(h *HTTPInference) {
		if c != nil {
			h.client = c
		}
	}
}

func WithRequestTimeout(d time.Duration) HTTPOption {
	return func(h *HTTPInference) {
		if d > 0 {
			h.timeout = d
		}
	}
}

func NewHTTPInference(endpoint string, opts ...HTTPOption) *HTTPInference {
	h := &HTTPInference{
		endpoint: endpoint,
		timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.client == nil {
		h.client = &http.Client{Timeout: h.timeout}
	}
	return h
}

type predictRequest struct {
	Document Tensor `json:"document"`
	Selfie   Tensor `json:"selfie"`
}

type predictResponse struct {
	Outputs []float32 `json:"outputs"`
}

func (h *HTTPInference) Predict(ctx context.Context, document, selfie Tensor) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var out predictResponse
	err := evidence.PostJSON(ctx, h.client, evidence.StageSimilarity, h.endpoint,
		predictRequest{Document: document, Selfie: selfie}, &out)
	if err != nil {
		return nil, err
	}
	return out.Outputs, nil
}

var (
	_ Inference = Unavailable{}
	_ Inference = (*HTTPInference)(nil)
)
