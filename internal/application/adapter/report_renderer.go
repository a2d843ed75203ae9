package adapter

import (
	"io"
)

// ProjectReportRow is one transaction line of a rendered report.
type ProjectReportRow struct {
	Date        string
	Type        string
	Category    string
	Description string
	Amount      string
}

// ProjectReportData is everything a rendered project report shows.
// All values are already formatted for display.
type ProjectReportData struct {
	Name           string
	Partner        string
	Status         string
	ContractNumber string
	Period         string
	TaxRate        int
	ProjectValue   string
	TaxAmount      string
	TotalWithTax   string
	TotalIncome    string
	TotalExpense   string
	Balance        string
	Progress       int
	GeneratedAt    string
	Rows           []ProjectReportRow
}

// ReportRenderer defines the interface for rendering project reports.
type ReportRenderer interface {
	// RenderProjectReport writes a PDF report to w.
	RenderProjectReport(w io.Writer, data *ProjectReportData) error
}
