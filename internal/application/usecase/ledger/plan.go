package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/domain/entity"
)

// PlanCreate returns the balance effect of inserting t.
func PlanCreate(t *entity.Transaction) []entity.BalanceAdjustment {
	return mergeAdjustments(application(t))
}

// PlanUpdate returns the balance effect of replacing previous with next.
// The reversal of previous is listed before the application of next, and
// adjustments to the same project are merged into one delta. Zero deltas
// are dropped, so an edit that does not change any balance yields nil.
func PlanUpdate(previous, next *entity.Transaction) []entity.BalanceAdjustment {
	return mergeAdjustments(append(reversal(previous), application(next)...))
}

// PlanDelete returns the balance effect of removing t.
func PlanDelete(t *entity.Transaction) []entity.BalanceAdjustment {
	return mergeAdjustments(reversal(t))
}

func reversal(t *entity.Transaction) []entity.BalanceAdjustment {
	if !t.IsIncome() {
		return nil
	}
	return []entity.BalanceAdjustment{{ProjectID: t.ProjectID, Delta: t.Amount.Neg()}}
}

func application(t *entity.Transaction) []entity.BalanceAdjustment {
	if !t.IsIncome() {
		return nil
	}
	return []entity.BalanceAdjustment{{ProjectID: t.ProjectID, Delta: t.Amount}}
}

func mergeAdjustments(adjustments []entity.BalanceAdjustment) []entity.BalanceAdjustment {
	if len(adjustments) == 0 {
		return nil
	}

	order := make([]uuid.UUID, 0, len(adjustments))
	totals := make(map[uuid.UUID]decimal.Decimal, len(adjustments))
	for _, adj := range adjustments {
		current, seen := totals[adj.ProjectID]
		if !seen {
			order = append(order, adj.ProjectID)
		}
		totals[adj.ProjectID] = current.Add(adj.Delta)
	}

	var merged []entity.BalanceAdjustment
	for _, id := range order {
		if delta := totals[id]; !delta.IsZero() {
			merged = append(merged, entity.BalanceAdjustment{ProjectID: id, Delta: delta})
		}
	}
	return merged
}

// touchedProjects lists the distinct projects either snapshot belongs to.
func touchedProjects(transactions ...*entity.Transaction) []uuid.UUID {
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]bool, len(transactions))
	for _, t := range transactions {
		if t == nil || seen[t.ProjectID] {
			continue
		}
		seen[t.ProjectID] = true
		ids = append(ids, t.ProjectID)
	}
	return ids
}
