package metrics

import (
	"sort"
	"time"

	"fincontrol-backend/internal/models"
)

type Severity string

const (
	SeverityCritical Severity = "critical" // más de 90 días
	SeverityWarning  Severity = "warning"  // 61-90 días
	SeverityCaution  Severity = "caution"  // 31-60 días
	SeverityCurrent  Severity = "current"  // hasta 30 días
)

type AgingBucket struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type AgingRow struct {
	Transaction models.Transaction `json:"transaction"`
	DaysOverdue int                `json:"days_overdue"`
	Severity    Severity           `json:"severity"`
}

type AgingReport struct {
	Type          models.TxType `json:"type"`
	Buckets       []AgingBucket `json:"buckets"` // 0-30 / 31-60 / 61-90 / 90+
	Total         float64       `json:"total"`
	OverdueAmount float64       `json:"overdue_amount"` // suma de los tres tramos posteriores a 0-30
	Rows          []AgingRow    `json:"rows"`           // pendientes ordenadas por antigüedad descendente
}

// ComputeAging: reporte de antigüedad de saldos sobre la colección COMPLETA
// (los reportes siempre muestran el libro entero, sin filtros del tablero).
// Particiona las pendientes del tipo dado en cuatro tramos disjuntos por
// días transcurridos; el límite inferior de cada tramo es inclusivo, así que
// 30 días cae en el primero y 31 en el segundo.
func ComputeAging(txs []models.Transaction, txType models.TxType, now time.Time) AgingReport {
	report := AgingReport{
		Type: txType,
		Buckets: []AgingBucket{
			{Label: "0-30"},
			{Label: "31-60"},
			{Label: "61-90"},
			{Label: "90+"},
		},
		Rows: []AgingRow{},
	}

	for _, t := range txs {
		if t.Type != txType || t.Status != models.StatusPending {
			continue
		}

		days := AgeDays(t.Date, now)
		idx := bucketIndex(days)

		report.Buckets[idx].Count++
		report.Buckets[idx].Amount += t.Amount
		report.Total += t.Amount
		if idx > 0 {
			report.OverdueAmount += t.Amount
		}

		report.Rows = append(report.Rows, AgingRow{
			Transaction: t,
			DaysOverdue: days,
			Severity:    severityFor(days),
		})
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].DaysOverdue > report.Rows[j].DaysOverdue
	})

	return report
}

func bucketIndex(days int) int {
	switch {
	case days <= 30:
		return 0
	case days <= 60:
		return 1
	case days <= 90:
		return 2
	default:
		return 3
	}
}

func severityFor(days int) Severity {
	switch {
	case days > 90:
		return SeverityCritical
	case days > 60:
		return SeverityWarning
	case days > 30:
		return SeverityCaution
	default:
		return SeverityCurrent
	}
}
