package entity

// Income categories.
const (
	CategoryProject = "Proyek"
	CategoryPayment = "Pembayaran"
	CategoryOther   = "Lainnya"
)

// Expense categories.
const (
	CategoryOperational  = "Operasional"
	CategoryMaterial     = "Material"
	CategoryWages        = "Upah Karyawan/Tukang"
	CategoryOtherExpense = "Pengeluaran Lain"
)

var categoriesByType = map[TransactionType][]string{
	TransactionTypeIncome:  {CategoryProject, CategoryPayment, CategoryOther},
	TransactionTypeExpense: {CategoryOperational, CategoryMaterial, CategoryWages, CategoryOtherExpense},
}

// CategoriesFor returns the categories accepted for a transaction type.
func CategoriesFor(t TransactionType) []string {
	categories := categoriesByType[t]
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// IsValidCategory reports whether category belongs to the closed set for t.
func IsValidCategory(t TransactionType, category string) bool {
	for _, c := range categoriesByType[t] {
		if c == category {
			return true
		}
	}
	return false
}
