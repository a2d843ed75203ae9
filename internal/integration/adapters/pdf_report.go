package adapters

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/project-ledger/backend/internal/application/adapter"
)

const (
	reportCompany = "PT PERMATA ENERGI BORNEO"
	reportTitle   = "LAPORAN PROYEK"
	reportFont    = "Helvetica"
)

// transaction table columns, in mm; widths add up to the A4 text width
var reportColumns = []struct {
	title string
	width float64
	align string
}{
	{"Tanggal", 28, "L"},
	{"Tipe", 24, "L"},
	{"Kategori", 34, "L"},
	{"Deskripsi", 58, "L"},
	{"Jumlah", 36, "R"},
}

// PDFReportRenderer implements adapter.ReportRenderer with fpdf.
type PDFReportRenderer struct{}

// NewPDFReportRenderer creates a new PDF report renderer.
func NewPDFReportRenderer() *PDFReportRenderer {
	return &PDFReportRenderer{}
}

// RenderProjectReport writes the report of one project as an A4 PDF.
func (r *PDFReportRenderer) RenderProjectReport(w io.Writer, data *adapter.ProjectReportData) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(reportTitle+" "+data.Name, true)
	pdf.SetCreator(reportCompany, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(reportFont, "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Dibuat %s - Halaman %d/{nb}", data.GeneratedAt, pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont(reportFont, "B", 16)
	pdf.CellFormat(0, 8, reportCompany, "", 1, "C", false, 0, "")
	pdf.SetFont(reportFont, "B", 12)
	pdf.CellFormat(0, 7, reportTitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section(pdf, tr, "Informasi Proyek")
	field(pdf, tr, "Nama Proyek", data.Name)
	field(pdf, tr, "Mitra", data.Partner)
	field(pdf, tr, "Status", data.Status)
	field(pdf, tr, "No. Kontrak", data.ContractNumber)
	field(pdf, tr, "Periode", data.Period)
	pdf.Ln(3)

	section(pdf, tr, "Ringkasan Keuangan")
	field(pdf, tr, "Nilai Proyek", data.ProjectValue)
	field(pdf, tr, fmt.Sprintf("PPN (%d%%)", data.TaxRate), data.TaxAmount)
	field(pdf, tr, "Total dengan PPN", data.TotalWithTax)
	field(pdf, tr, "Total Pemasukan", data.TotalIncome)
	field(pdf, tr, "Total Pengeluaran", data.TotalExpense)
	field(pdf, tr, "Saldo", data.Balance)
	field(pdf, tr, "Progres Pembayaran", fmt.Sprintf("%d%%", data.Progress))
	pdf.Ln(3)

	section(pdf, tr, "Detail Transaksi")
	if len(data.Rows) == 0 {
		pdf.SetFont(reportFont, "I", 10)
		pdf.CellFormat(0, 6, "Belum ada transaksi", "", 1, "L", false, 0, "")
	} else {
		transactionTable(pdf, tr, data.Rows)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func section(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont(reportFont, "B", 11)
	pdf.SetFillColor(230, 236, 245)
	pdf.CellFormat(0, 7, tr(title), "", 1, "L", true, 0, "")
	pdf.Ln(1)
}

func field(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont(reportFont, "", 10)
	pdf.CellFormat(50, 6, tr(label), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(": "+value), "", 1, "L", false, 0, "")
}

func transactionTable(pdf *fpdf.Fpdf, tr func(string) string, rows []adapter.ProjectReportRow) {
	header := func() {
		pdf.SetFont(reportFont, "B", 9)
		pdf.SetFillColor(52, 73, 94)
		pdf.SetTextColor(255, 255, 255)
		for _, col := range reportColumns {
			pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(reportFont, "", 9)
	}

	header()
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()

	for i, row := range rows {
		if pdf.GetY()+6 > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		values := []string{row.Date, row.Type, row.Category, row.Description, row.Amount}
		for j, col := range reportColumns {
			text := fitText(pdf, tr(values[j]), col.width-2)
			pdf.CellFormat(col.width, 6, text, "1", 0, col.align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
}

// fitText shortens text with "..." until it fits width.
func fitText(pdf *fpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"...") > width {
		text = text[:len(text)-1]
	}
	return strings.TrimSpace(text) + "..."
}

var _ adapter.ReportRenderer = (*PDFReportRenderer)(nil)
