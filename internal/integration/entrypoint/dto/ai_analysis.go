package dto

import (
	aianalysis "github.com/project-ledger/backend/internal/application/usecase/ai_analysis"
)

// SuggestionResponse is the transaction proposed from an evidence image.
// It is never saved automatically; the client submits it through the create endpoint.
type SuggestionResponse struct {
	Date        string `json:"date,omitempty"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// SuggestionIssueResponse describes a suggested field that failed validation.
type SuggestionIssueResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AnalyzeImageResponse represents the image analysis API response.
type AnalyzeImageResponse struct {
	AnalysisID string                    `json:"analysis_id"`
	Suggestion *SuggestionResponse       `json:"suggestion"`
	Issues     []SuggestionIssueResponse `json:"issues"`
	Valid      bool                      `json:"valid"`
	ImageURL   string                    `json:"image_url,omitempty"`
	ImagePath  string                    `json:"image_path,omitempty"`
}

// ToAnalyzeImageResponse converts the analysis output.
func ToAnalyzeImageResponse(output *aianalysis.AnalyzeImageOutput) AnalyzeImageResponse {
	response := AnalyzeImageResponse{
		AnalysisID: output.AnalysisID.String(),
		Issues:     make([]SuggestionIssueResponse, 0, len(output.Issues)),
		Valid:      len(output.Issues) == 0,
		ImageURL:   output.ImageURL,
		ImagePath:  output.ImagePath,
	}

	if s := output.Suggestion; s != nil {
		response.Suggestion = &SuggestionResponse{
			Amount:      s.Amount.StringFixed(2),
			Type:        string(s.Type),
			Category:    s.Category,
			Description: s.Description,
		}
		if s.Date != nil {
			response.Suggestion.Date = s.Date.Format("2006-01-02T15:04")
		}
	}

	for _, issue := range output.Issues {
		response.Issues = append(response.Issues, SuggestionIssueResponse{
			Code:    string(issue.Code),
			Message: issue.Message,
		})
	}

	return response
}
