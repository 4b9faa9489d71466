package metrics

import (
	"strings"

	"fincontrol-backend/internal/models"
)

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type PnLReport struct {
	Month             string          `json:"month"` // "YYYY-MM"
	IncomeByCategory  []CategoryTotal `json:"income_by_category"`
	ExpenseByCategory []CategoryTotal `json:"expense_by_category"`
	TotalIncome       float64         `json:"total_income"`
	TotalExpenses     float64         `json:"total_expenses"`
	Net               float64         `json:"net"`
}

// ComputePnL: estado de resultados del mes indicado sobre la colección
// completa. Corte puro por prefijo de fecha, sin antigüedad ni filtros.
func ComputePnL(txs []models.Transaction, month string) PnLReport {
	report := PnLReport{
		Month:             month,
		IncomeByCategory:  []CategoryTotal{},
		ExpenseByCategory: []CategoryTotal{},
	}

	incomeIdx := make(map[string]int)
	expenseIdx := make(map[string]int)

	for _, t := range txs {
		if !strings.HasPrefix(t.Date, month) {
			continue
		}

		name := string(t.Category)
		switch t.Type {
		case models.TxIncome:
			idx, ok := incomeIdx[name]
			if !ok {
				incomeIdx[name] = len(report.IncomeByCategory)
				report.IncomeByCategory = append(report.IncomeByCategory, CategoryTotal{Category: name})
				idx = incomeIdx[name]
			}
			report.IncomeByCategory[idx].Total += t.Amount
			report.TotalIncome += t.Amount
		case models.TxExpense:
			idx, ok := expenseIdx[name]
			if !ok {
				expenseIdx[name] = len(report.ExpenseByCategory)
				report.ExpenseByCategory = append(report.ExpenseByCategory, CategoryTotal{Category: name})
				idx = expenseIdx[name]
			}
			report.ExpenseByCategory[idx].Total += t.Amount
			report.TotalExpenses += t.Amount
		}
	}

	report.Net = report.TotalIncome - report.TotalExpenses
	return report
}
