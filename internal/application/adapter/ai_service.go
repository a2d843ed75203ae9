package adapter

import (
	"context"
)

// ImageAnalysisRequest represents an image to extract transaction fields from.
type ImageAnalysisRequest struct {
	Image    []byte
	MimeType string
	// Categories lists the accepted categories per transaction type, so the
	// model answers with values the validator accepts.
	IncomeCategories  []string
	ExpenseCategories []string
}

// ImageAnalysisResult holds the raw model output. Parsing and validation
// happen in the use case; nothing here is trusted.
type ImageAnalysisResult struct {
	RawResponse string
}

// ImageAnalyzer defines the interface for AI image analysis.
type ImageAnalyzer interface {
	// Analyze sends the image to the model and returns its raw JSON answer.
	Analyze(ctx context.Context, request *ImageAnalysisRequest) (*ImageAnalysisResult, error)

	// IsAvailable checks if the AI service is available and properly configured.
	IsAvailable() bool
}
