package ocr

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"kycgate/internal/kyc/evidence"
)

// Whitelist is the character set recognition is constrained to.
const Whitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789 .,:;/-'#()&"

// PageSegSingleBlock assumes a single uniform block of text (Tesseract PSM 6).
const PageSegSingleBlock = 6

// RecognizeOptions constrains the recognition engine.
type RecognizeOptions struct {
	CharWhitelist string `json:"char_whitelist"`
	PageSegMode   int    `json:"psm"`
}

// DefaultRecognizeOptions are the options used for identity documents.
func DefaultRecognizeOptions() RecognizeOptions {
	return RecognizeOptions{
		CharWhitelist: Whitelist,
		PageSegMode:   PageSegSingleBlock,
	}
}

// Recognition is raw engine output. Confidence is nominally 0-100.
type Recognition struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Recognizer is the text recognition engine contract.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, opts RecognizeOptions) (Recognition, error)
}

// Unavailable is used when no recognition engine is configured.
type Unavailable struct{}

func (Unavailable) Recognize(context.Context, []byte, RecognizeOptions) (Recognition, error) {
	return Recognition{}, evidence.NewStageError(evidence.StageOCR, evidence.CategoryUnconfigured, "no recognition engine configured", nil)
}

// HTTPRecognizer calls a recognition service's POST /recognize endpoint.
type HTTPRecognizer struct {
	baseURL string
	client  evidence.HTTPDoer
	timeout time.Duration
}

type HTTPOption func(*HTTPRecognizer)

func WithHTTPClient(c evidence.HTTPDoer) HTTPOption {
	return func(r *HTTPRecognizer) {
		if c != nil {
			r.client = c
		}
	}
}

func WithRequestTimeout(d time.Duration) HTTPOption {
	return func(r *HTTPRecognizer) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func NewHTTPRecognizer(baseURL string, opts ...HTTPOption) *HTTPRecognizer {
	r := &HTTPRecognizer{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.client == nil {
		r.client = &http.Client{Timeout: r.timeout}
	}
	return r
}

type recognizeRequest struct {
	Image string `json:"image"`
	RecognizeOptions
}

func (r *HTTPRecognizer) Recognize(ctx context.Context, image []byte, opts RecognizeOptions) (Recognition, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req := recognizeRequest{
		Image:            base64.StdEncoding.EncodeToString(image),
		RecognizeOptions: opts,
	}
	var out Recognition
	if err := evidence.PostJSON(ctx, r.client, evidence.StageOCR, r.baseURL+"/recognize", req, &out); err != nil {
		return Recognition{}, err
	}
	return out, nil
}

var (
	_ Recognizer = Unavailable{}
	_ Recognizer = (*HTTPRecognizer)(nil)
)
