package main

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort      = "8092"
	defaultLatencyMs = "80"
)

type Tensor struct {
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data"`
}

type PredictRequest struct {
	Document Tensor `json:"document"`
	Selfie   Tensor `json:"selfie"`
}

type PredictResponse struct {
	Outputs []float32 `json:"outputs"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var (
	latencyMs = getEnvInt("LATENCY_MS", defaultLatencyMs)
	// FAIL_EVERY makes every Nth request fail with 503 to exercise the client breaker.
	failEvery = getEnvInt("FAIL_EVERY", "0")
	requests  int
)

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/predict", handlePredict)

	log.Printf("Mock inference server starting on port %s", port)
	log.Printf("Simulated latency: %dms", latencyMs)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "inference-server",
		"version": "1.0.0",
	})
}

func handlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requests++
	if failEvery > 0 && requests%failEvery == 0 {
		sendError(w, "model replica unavailable", http.StatusServiceUnavailable)
		return
	}

	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Document.Data) == 0 || len(req.Document.Data) != len(req.Selfie.Data) {
		sendError(w, "document and selfie tensors must have the same non-zero size", http.StatusBadRequest)
		return
	}

	time.Sleep(time.Duration(latencyMs) * time.Millisecond)

	score := cosine(req.Document.Data, req.Selfie.Data)
	log.Printf("Predicted similarity %.3f for %d-value tensors", score, len(req.Document.Data))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(PredictResponse{Outputs: []float32{score}})
}

// cosine stands in for an embedding model: identical pixels score 1.
func cosine(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

func sendError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
	log.Printf("Error response: %d - %s", code, message)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key, defaultValue string) int {
	value := getEnv(key, defaultValue)
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %s", key, defaultValue)
		intValue, _ = strconv.Atoi(defaultValue)
	}
	return intValue
}
