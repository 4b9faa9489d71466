package export

import (
	"fmt"
	"time"

	"fincontrol-backend/internal/metrics"
	"fincontrol-backend/internal/models"
)

// Paginación del documento imprimible. La primera página carga el encabezado,
// el resumen de métricas y el bloque de alertas, así que le caben menos filas;
// cada alerta activa le resta una fila más.
const (
	rowsFirstPage = 18
	rowsPerPage   = 28
)

const ConfidentialityNotice = "Documento confidencial - uso interno de la constructora"

type SummaryCell struct {
	Label string
	Value float64
}

type Page struct {
	Number int
	Rows   []models.Transaction
	Footer string
}

type Document struct {
	Title       string
	GeneratedAt string
	GeneratedBy string
	Summary     []SummaryCell
	Alerts      []string // vacío si no hay alertas activas, el bloque no se dibuja
	Pages       []Page
}

// BuildDocument: proyección pura del reporte imprimible. Consume exactamente
// las mismas métricas y el mismo subconjunto filtrado que sirve el tablero,
// para que lo exportado coincida con lo que está en pantalla.
func BuildDocument(m metrics.Metrics, txs []models.Transaction, generatedAt time.Time, user string) Document {
	doc := Document{
		Title:       "Reporte Financiero",
		GeneratedAt: generatedAt.Format("2006-01-02 15:04"),
		GeneratedBy: user,
		Summary: []SummaryCell{
			{Label: "Ingresos Totales", Value: m.TotalIncome},
			{Label: "Gastos Totales", Value: m.TotalExpenses},
			{Label: "Balance Neto", Value: m.NetBalance},
			{Label: "CXC Pendientes", Value: m.PendingReceivables},
			{Label: "CXP Pendientes", Value: m.PendingPayables},
		},
		Alerts: activeAlerts(m),
	}

	firstCap := rowsFirstPage - len(doc.Alerts)
	if firstCap < 1 {
		firstCap = 1
	}

	remaining := txs
	pageNo := 0
	for {
		pageNo++
		limit := rowsPerPage
		if pageNo == 1 {
			limit = firstCap
		}
		if limit > len(remaining) {
			limit = len(remaining)
		}

		doc.Pages = append(doc.Pages, Page{
			Number: pageNo,
			Rows:   remaining[:limit],
		})
		remaining = remaining[limit:]
		if len(remaining) == 0 {
			break
		}
	}

	total := len(doc.Pages)
	for i := range doc.Pages {
		doc.Pages[i].Footer = fmt.Sprintf("Página %d de %d - %s", doc.Pages[i].Number, total, ConfidentialityNotice)
	}

	return doc
}

func activeAlerts(m metrics.Metrics) []string {
	alerts := []string{}
	if m.Alerts.NegativeBalance {
		alerts = append(alerts, "Balance neto negativo")
	}
	if m.Alerts.HighCXP {
		alerts = append(alerts, "Cuentas por pagar por encima del límite")
	}
	if m.Alerts.HighCXC {
		alerts = append(alerts, "Cuentas por cobrar por encima del límite")
	}
	if m.Alerts.HasOverdue {
		alerts = append(alerts, fmt.Sprintf("%d transacciones vencidas", len(m.OverdueTransactions)))
	}
	if m.Alerts.HasNegativeProjects {
		alerts = append(alerts, fmt.Sprintf("%d obras con margen negativo", len(m.NegativeProjects)))
	}
	return alerts
}
