package report

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-ledger/backend/internal/domain/entity"
)

func TestFormatIDR(t *testing.T) {
	tests := []struct {
		amount   decimal.Decimal
		expected string
	}{
		{decimal.Zero, "Rp 0"},
		{decimal.NewFromInt(999), "Rp 999"},
		{decimal.NewFromInt(1_000_000), "Rp 1.000.000"},
		{decimal.RequireFromString("1500.60"), "Rp 1.501"},
		{decimal.NewFromInt(-25_000), "-Rp 25.000"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatIDR(tt.amount))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15 Januari 2024", FormatDate(day(2024, 1, 15)))
	assert.Equal(t, "1 Desember 2023", FormatDate(day(2023, 12, 1)))
	assert.Equal(t, "-", FormatDate(time.Time{}))
}

func TestShareMessage(t *testing.T) {
	p := project(entity.ProjectStatusOngoing, 1_000_000, 300_000, day(2024, 12, 31))
	p.Name = "Jaringan Listrik Gedung A"
	p.StartDate = day(2024, 1, 15)
	transactions := []*entity.Transaction{
		txn(entity.TransactionTypeIncome, entity.CategoryPayment, 300_000, day(2024, 5, 1)),
		txn(entity.TransactionTypeExpense, entity.CategoryMaterial, 50_000, day(2024, 5, 2)),
	}
	detailURL := "https://ledger.example.com/projects/" + p.ID.String()

	message := ShareMessage(p, transactions, detailURL)

	assert.True(t, strings.HasPrefix(message, "*LAPORAN PROYEK*\n*Jaringan Listrik Gedung A*\nMitra: PT Mitra"))
	assert.Contains(t, message, "📊 *Status:* On Going")
	assert.Contains(t, message, "📅 *Periode:* 15 Januari 2024 - 31 Desember 2024")
	assert.Contains(t, message, "• Nilai Proyek: Rp 1.000.000")
	assert.Contains(t, message, "• Pajak (11%): Rp 110.000")
	assert.Contains(t, message, "• Total: Rp 1.110.000")
	assert.Contains(t, message, "• Total Pemasukan: Rp 300.000")
	assert.Contains(t, message, "• Total Pengeluaran: Rp 50.000")
	assert.Contains(t, message, "• Saldo: Rp 250.000")
	assert.Contains(t, message, "📊 *Progress:* 30%")
	assert.True(t, strings.HasSuffix(message, "🔗 Link Detail: "+detailURL))
}

func TestShareMessage_WithoutLink(t *testing.T) {
	p := project(entity.ProjectStatusUpcoming, 0, 0, day(2024, 12, 31))

	message := ShareMessage(p, nil, "")

	assert.NotContains(t, message, "Link Detail")
	assert.True(t, strings.HasSuffix(message, "📊 *Progress:* 0%"))
}

func TestShareURL(t *testing.T) {
	message := "*LAPORAN PROYEK*\nSaldo: Rp 250.000 & 30%"

	link := ShareURL(message)

	require.True(t, strings.HasPrefix(link, WhatsAppSendURL))
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, message, parsed.Query().Get("text"))
}

func TestProjectURL(t *testing.T) {
	id := uuid.New()

	assert.Empty(t, ProjectURL("", id))
	assert.Equal(t, "https://ledger.example.com/projects/"+id.String(), ProjectURL("https://ledger.example.com/", id))
}

func TestReportFileName(t *testing.T) {
	p := &entity.Project{Name: "Gedung A/B (Tahap 2)"}

	assert.Equal(t, "Laporan_Gedung_A_B__Tahap_2__2024-05-01.pdf", ReportFileName(p, day(2024, 5, 1)))
}
