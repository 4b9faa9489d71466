package metrics

import (
	"sort"

	"fincontrol-backend/internal/models"
)

type CashFlowMonth struct {
	Month      string  `json:"month"` // "YYYY-MM"
	Inflow     float64 `json:"inflow"`
	Outflow    float64 `json:"outflow"`
	Net        float64 `json:"net"`
	Cumulative float64 `json:"cumulative"`
}

type CashFlowReport struct {
	Months       []CashFlowMonth `json:"months"`
	FinalBalance float64         `json:"final_balance"`
}

// ComputeCashFlow: flujo de caja REALIZADO, mes a mes, sobre la colección
// completa. Solo cuenta transacciones liquidadas (status=paid); esto lo
// distingue del flujo proyectado del tablero, que incluye pendientes y opera
// sobre el subconjunto filtrado. Son dos cálculos de negocio distintos.
func ComputeCashFlow(txs []models.Transaction) CashFlowReport {
	report := CashFlowReport{Months: []CashFlowMonth{}}

	byMonth := make(map[string]*CashFlowMonth)
	for _, t := range txs {
		if t.Status != models.StatusPaid {
			continue
		}
		month := monthOf(t.Date)
		if month == "" {
			continue
		}
		m, ok := byMonth[month]
		if !ok {
			m = &CashFlowMonth{Month: month}
			byMonth[month] = m
		}
		if t.Type == models.TxIncome {
			m.Inflow += t.Amount
		} else {
			m.Outflow += t.Amount
		}
	}

	for _, m := range byMonth {
		m.Net = m.Inflow - m.Outflow
		report.Months = append(report.Months, *m)
	}
	sort.Slice(report.Months, func(i, j int) bool {
		return report.Months[i].Month < report.Months[j].Month
	})

	// saldo acumulado en orden cronológico
	var cumulative float64
	for i := range report.Months {
		cumulative += report.Months[i].Net
		report.Months[i].Cumulative = cumulative
	}
	report.FinalBalance = cumulative

	return report
}
