package dto

import (
	"github.com/google/uuid"

	"github.com/project-ledger/backend/internal/application/usecase/reconciliation"
	"github.com/project-ledger/backend/internal/domain/entity"
)

// RecomputeResponse is the outcome of rebuilding one project's paid amount.
type RecomputeResponse struct {
	ProjectID  string `json:"project_id"`
	Previous   string `json:"previous_paid_amount"`
	PaidAmount string `json:"paid_amount"`
	Drifted    bool   `json:"drifted"`
}

// ReconciliationRunResponse reports a full reconciliation pass.
type ReconciliationRunResponse struct {
	Checked int                 `json:"checked"`
	Drifted []RecomputeResponse `json:"drifted"`
	Failed  []string            `json:"failed"`
}

// PendingReconciliationResponse lists projects waiting for a recompute.
type PendingReconciliationResponse struct {
	ProjectIDs []string `json:"project_ids"`
	Count      int      `json:"count"`
}

// ToRecomputeResponse converts a recompute result.
func ToRecomputeResponse(result *entity.RecomputeResult) RecomputeResponse {
	return RecomputeResponse{
		ProjectID:  result.ProjectID.String(),
		Previous:   result.Previous.StringFixed(2),
		PaidAmount: result.PaidAmount.StringFixed(2),
		Drifted:    result.Drifted(),
	}
}

// ToReconciliationRunResponse converts a reconciliation pass.
func ToReconciliationRunResponse(output *reconciliation.RunReconciliationOutput) ReconciliationRunResponse {
	drifted := make([]RecomputeResponse, 0, len(output.Drifted))
	for _, r := range output.Drifted {
		drifted = append(drifted, ToRecomputeResponse(r))
	}

	return ReconciliationRunResponse{
		Checked: output.Checked,
		Drifted: drifted,
		Failed:  uuidStrings(output.Failed),
	}
}

// ToPendingReconciliationResponse converts the pending queue contents.
func ToPendingReconciliationResponse(ids []uuid.UUID) PendingReconciliationResponse {
	return PendingReconciliationResponse{
		ProjectIDs: uuidStrings(ids),
		Count:      len(ids),
	}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
