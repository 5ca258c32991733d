package main

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort      = "8091"
	defaultLatencyMs = "150"
)

type RecognizeRequest struct {
	Image         string `json:"image"`
	CharWhitelist string `json:"char_whitelist"`
	PSM           int    `json:"psm"`
}

type RecognizeResponse struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var latencyMs = getEnvInt("LATENCY_MS", defaultLatencyMs)

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/recognize", handleRecognize)

	log.Printf("Mock OCR engine starting on port %s", port)
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
		"service": "ocr-engine",
		"version": "1.0.0",
	})
}

func handleRecognize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RecognizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil || len(image) == 0 {
		sendError(w, "image must be non-empty base64", http.StatusBadRequest)
		return
	}

	time.Sleep(time.Duration(latencyMs) * time.Millisecond)

	resp := recognize(image)
	log.Printf("Recognized %d bytes (psm=%d, confidence=%.1f)", len(image), req.PSM, resp.Confidence)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// recognize derives a stable identity card text from the image digest so the
// same image always yields the same fields.
func recognize(image []byte) RecognizeResponse {
	sum := sha256.Sum256(image)
	n := int(sum[0])<<8 | int(sum[1])

	firstNames := []string{"JANE", "JOHN", "AMIRA", "LUCAS", "MEI", "OMAR", "SOFIA", "KENJI", "NORA", "IVAN"}
	lastNames := []string{"DOE", "SMITH", "HASSAN", "SILVA", "CHEN", "OKAFOR", "ROSSI", "TANAKA", "BERG", "PETROV"}
	streets := []string{"MAIN ST", "OAK AVE", "MAPLE DR", "PINE RD", "ELM ST"}
	cities := []string{"SPRINGFIELD", "RIVERSIDE", "FAIRVIEW", "CLINTON", "SALEM"}

	name := fmt.Sprintf("%s %s", firstNames[n%len(firstNames)], lastNames[(n/7)%len(lastNames)])
	docNumber := fmt.Sprintf("ID%07d", n*131%10000000)
	dob := fmt.Sprintf("%02d/%02d/%04d", 1+n%28, 1+n%12, 1950+n%50)
	issue := fmt.Sprintf("%02d.%02d.%04d", 1+(n/3)%28, 1+(n/5)%12, 2015+n%8)
	expiry := fmt.Sprintf("%02d.%02d.%04d", 1+(n/3)%28, 1+(n/5)%12, 2025+n%8)
	address := fmt.Sprintf("%d %s %s", 1+n%900, streets[n%len(streets)], cities[(n/3)%len(cities)])

	text := fmt.Sprintf("REPUBLIC IDENTITY CARD\nNAME: %s\nDOCUMENT NO: %s\nDATE OF BIRTH: %s\nADDRESS: %s\nDATE OF ISSUE: %s\nDATE OF EXPIRY: %s\n",
		name, docNumber, dob, address, issue, expiry)

	return RecognizeResponse{
		Text:       text,
		Confidence: 60 + float64(n%40),
	}
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
