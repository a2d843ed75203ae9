// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectStatus represents the lifecycle stage of a project.
type ProjectStatus string

const (
	ProjectStatusUpcoming  ProjectStatus = "akan-datang"
	ProjectStatusOngoing   ProjectStatus = "ongoing"
	ProjectStatusRetention ProjectStatus = "retensi"
	ProjectStatusComplete  ProjectStatus = "selesai"
)

// ProjectStatuses lists every accepted project status.
var ProjectStatuses = []ProjectStatus{
	ProjectStatusUpcoming,
	ProjectStatusOngoing,
	ProjectStatusRetention,
	ProjectStatusComplete,
}

var projectStatusLabels = map[ProjectStatus]string{
	ProjectStatusUpcoming:  "Akan Datang",
	ProjectStatusOngoing:   "On Going",
	ProjectStatusRetention: "Retensi",
	ProjectStatusComplete:  "Selesai",
}

// IsValid reports whether the status is one of the known project statuses.
func (s ProjectStatus) IsValid() bool {
	_, ok := projectStatusLabels[s]
	return ok
}

// Label returns the human readable status name used in reports.
func (s ProjectStatus) Label() string {
	if label, ok := projectStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Allowed tax rates, in percent.
const (
	TaxRateNone     = 0
	TaxRateStandard = 11
)

// AllowedTaxRates lists every accepted project tax rate.
var AllowedTaxRates = []int{TaxRateNone, TaxRateStandard}

// IsAllowedTaxRate reports whether rate is an accepted tax percentage.
func IsAllowedTaxRate(rate int) bool {
	for _, allowed := range AllowedTaxRates {
		if rate == allowed {
			return true
		}
	}
	return false
}

var hundred = decimal.NewFromInt(100)

// Project represents a contracted job whose payments are tracked by the ledger.
type Project struct {
	ID             uuid.UUID
	Name           string
	Partner        string
	Status         ProjectStatus
	Value          decimal.Decimal // Contract value before tax
	TaxRate        int
	PaidAmount     decimal.Decimal // Sum of income transactions, maintained by the ledger engine
	StartDate      time.Time
	EndDate        time.Time
	ContractNumber string
	Description    string
	Audit          Audit
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewProject creates a new Project with a zero paid amount.
func NewProject(
	name string,
	partner string,
	status ProjectStatus,
	value decimal.Decimal,
	taxRate int,
	startDate time.Time,
	endDate time.Time,
	contractNumber string,
	description string,
	actor Principal,
) *Project {
	now := time.Now().UTC()

	return &Project{
		ID:             uuid.New(),
		Name:           name,
		Partner:        partner,
		Status:         status,
		Value:          value,
		TaxRate:        taxRate,
		PaidAmount:     decimal.Zero,
		StartDate:      startDate,
		EndDate:        endDate,
		ContractNumber: contractNumber,
		Description:    description,
		Audit:          NewAudit(actor),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// TaxAmount returns value * taxRate / 100.
func (p *Project) TaxAmount() decimal.Decimal {
	return p.Value.Mul(decimal.NewFromInt(int64(p.TaxRate))).Div(hundred)
}

// TotalWithTax returns the contract value including tax.
func (p *Project) TotalWithTax() decimal.Decimal {
	return p.Value.Add(p.TaxAmount())
}

// RemainingPayment returns the part of the pre-tax value not yet paid.
func (p *Project) RemainingPayment() decimal.Decimal {
	return p.Value.Sub(p.PaidAmount)
}

// ProjectFilter holds optional criteria for listing projects.
type ProjectFilter struct {
	Status *ProjectStatus
}
