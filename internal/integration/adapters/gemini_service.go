// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/project-ledger/backend/internal/application/adapter"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiService implements adapter.ImageAnalyzer using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
	timeout   time.Duration
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// WithTimeout bounds each analysis call. Zero means no limit beyond the caller's context.
func (s *GeminiService) WithTimeout(timeout time.Duration) *GeminiService {
	s.timeout = timeout
	return s
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Analyze sends an evidence image to Gemini and returns its JSON answer.
func (s *GeminiService) Analyze(ctx context.Context, request *adapter.ImageAnalysisRequest) (*adapter.ImageAnalysisResult, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx,
		genai.ImageData(imageFormat(request.MimeType), request.Image),
		genai.Text(buildImagePrompt(request)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	return &adapter.ImageAnalysisResult{RawResponse: text}, nil
}

// imageFormat turns "image/png" into the "png" format genai expects.
func imageFormat(mimeType string) string {
	return strings.TrimPrefix(mimeType, "image/")
}

func buildImagePrompt(request *adapter.ImageAnalysisRequest) string {
	var sb strings.Builder

	sb.WriteString(`Analisis gambar bukti transaksi ini (struk, nota, invoice atau bukti transfer) dan ekstrak informasinya.

Kembalikan HANYA objek JSON dengan format:
{
  "date": "YYYY-MM-DDTHH:mm",
  "amount": angka tanpa titik atau koma pemisah ribuan,
  "type": "income" atau "expense",
  "category": "salah satu kategori di bawah",
  "description": "deskripsi singkat maksimal 255 karakter"
}

Kategori untuk income:
`)
	for _, c := range request.IncomeCategories {
		sb.WriteString("- " + c + "\n")
	}

	sb.WriteString("\nKategori untuk expense:\n")
	for _, c := range request.ExpenseCategories {
		sb.WriteString("- " + c + "\n")
	}

	sb.WriteString(`
Jika tanggal tidak terlihat, kosongkan "date". Jika ragu antara income dan expense, pilih expense.
`)

	return sb.String()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && strings.TrimSpace(string(text)) != "" {
			return string(text), nil
		}
	}

	return "", fmt.Errorf("no text content in response")
}
