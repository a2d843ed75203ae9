package report

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/project-ledger/backend/internal/domain/entity"
)

// WhatsAppSendURL is the click-to-chat endpoint share links point at.
const WhatsAppSendURL = "https://api.whatsapp.com/send?text="

// ShareMessage builds the WhatsApp summary of a project. detailURL may be empty.
func ShareMessage(project *entity.Project, transactions []*entity.Transaction, detailURL string) string {
	totals := TransactionTotals(transactions)

	var b strings.Builder
	b.WriteString("*LAPORAN PROYEK*\n")
	fmt.Fprintf(&b, "*%s*\n", project.Name)
	fmt.Fprintf(&b, "Mitra: %s\n\n", project.Partner)

	fmt.Fprintf(&b, "📊 *Status:* %s\n", project.Status.Label())
	fmt.Fprintf(&b, "📅 *Periode:* %s\n\n", FormatPeriod(project.StartDate, project.EndDate))

	b.WriteString("💰 *Keuangan:*\n")
	fmt.Fprintf(&b, "• Nilai Proyek: %s\n", FormatIDR(project.Value))
	fmt.Fprintf(&b, "• Pajak (%d%%): %s\n", project.TaxRate, FormatIDR(project.TaxAmount()))
	fmt.Fprintf(&b, "• Total: %s\n\n", FormatIDR(project.TotalWithTax()))

	b.WriteString("📈 *Transaksi:*\n")
	fmt.Fprintf(&b, "• Total Pemasukan: %s\n", FormatIDR(totals.Income))
	fmt.Fprintf(&b, "• Total Pengeluaran: %s\n", FormatIDR(totals.Expense))
	fmt.Fprintf(&b, "• Saldo: %s\n\n", FormatIDR(totals.Balance))

	fmt.Fprintf(&b, "📊 *Progress:* %d%%", ProjectProgress(project))

	if detailURL != "" {
		fmt.Fprintf(&b, "\n\n🔗 Link Detail: %s", detailURL)
	}
	return b.String()
}

// ShareURL returns the WhatsApp link that pre-fills message.
func ShareURL(message string) string {
	return WhatsAppSendURL + url.QueryEscape(message)
}
