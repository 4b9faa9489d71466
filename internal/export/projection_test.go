package export

import (
	"strings"
	"testing"
	"time"

	"fincontrol-backend/internal/metrics"
	"fincontrol-backend/internal/models"
)

func makeTxs(n int) []models.Transaction {
	txs := make([]models.Transaction, n)
	for i := range txs {
		txs[i] = models.Transaction{
			ID:          string(rune('a' + i%26)),
			Date:        "2024-01-15",
			Description: "mov",
			Amount:      100,
			Type:        models.TxIncome,
			Category:    models.CategoryOther,
			Project:     "General",
			Status:      models.StatusPaid,
		}
	}
	return txs
}

func TestBuildDocument_NoAlertsBlock(t *testing.T) {
	m := metrics.Metrics{} // sin alertas activas
	doc := BuildDocument(m, makeTxs(5), time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC), "obra@constructora.com")

	if len(doc.Alerts) != 0 {
		t.Errorf("sin alertas activas el bloque debe quedar vacío: %v", doc.Alerts)
	}
	if doc.GeneratedAt != "2024-03-20 10:00" || doc.GeneratedBy != "obra@constructora.com" {
		t.Errorf("encabezado = %q / %q", doc.GeneratedAt, doc.GeneratedBy)
	}
	if len(doc.Pages) != 1 || len(doc.Pages[0].Rows) != 5 {
		t.Errorf("paginación = %d páginas", len(doc.Pages))
	}
}

func TestBuildDocument_AlertsShrinkFirstPage(t *testing.T) {
	m := metrics.Metrics{
		NetBalance: -1,
		Alerts:     metrics.Alerts{NegativeBalance: true, HighCXP: true},
	}
	txs := makeTxs(rowsFirstPage) // justo llenaría la primera página sin alertas

	doc := BuildDocument(m, txs, time.Now().UTC(), "obra@constructora.com")

	if len(doc.Alerts) != 2 {
		t.Fatalf("alertas activas = %d, want 2", len(doc.Alerts))
	}
	// cada alerta le resta una fila a la primera página
	if len(doc.Pages) != 2 {
		t.Fatalf("páginas = %d, want 2", len(doc.Pages))
	}
	if len(doc.Pages[0].Rows) != rowsFirstPage-2 {
		t.Errorf("primera página = %d filas, want %d", len(doc.Pages[0].Rows), rowsFirstPage-2)
	}
}

func TestBuildDocument_PaginationAndFooters(t *testing.T) {
	total := rowsFirstPage + rowsPerPage + 3
	doc := BuildDocument(metrics.Metrics{}, makeTxs(total), time.Now().UTC(), "u")

	if len(doc.Pages) != 3 {
		t.Fatalf("páginas = %d, want 3", len(doc.Pages))
	}

	rows := 0
	for i, p := range doc.Pages {
		rows += len(p.Rows)
		if p.Number != i+1 {
			t.Errorf("página %d numerada %d", i+1, p.Number)
		}
		if !strings.Contains(p.Footer, ConfidentialityNotice) {
			t.Errorf("el pie de la página %d no lleva la nota de confidencialidad: %q", p.Number, p.Footer)
		}
	}
	if rows != total {
		t.Errorf("filas paginadas = %d, want %d", rows, total)
	}
	if !strings.Contains(doc.Pages[2].Footer, "Página 3 de 3") {
		t.Errorf("pie final = %q", doc.Pages[2].Footer)
	}
}

func TestBuildDocument_EmptyList(t *testing.T) {
	doc := BuildDocument(metrics.Metrics{}, nil, time.Now().UTC(), "u")

	if len(doc.Pages) != 1 || len(doc.Pages[0].Rows) != 0 {
		t.Errorf("lista vacía: %d páginas", len(doc.Pages))
	}
	if len(doc.Summary) == 0 {
		t.Error("el resumen de métricas siempre está presente")
	}
}
