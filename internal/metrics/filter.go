package metrics

import (
	"strings"
	"time"

	"fincontrol-backend/internal/models"
)

type QuickFilter string

const (
	QuickMonth   QuickFilter = "month"
	QuickQuarter QuickFilter = "quarter"
	QuickYear    QuickFilter = "year"
	QuickAll     QuickFilter = "all"
)

// Filters - configuración de filtros del tablero. Campo vacío = sin
// restricción; todos los filtros activos se combinan con AND.
type Filters struct {
	DateFrom string          `json:"date_from"` // inclusive, "" = sin límite
	DateTo   string          `json:"date_to"`   // inclusive, "" = sin límite
	Project  string          `json:"project"`
	Category models.Category `json:"category"`
	Type     models.TxType   `json:"type"`
	Status   models.TxStatus `json:"status"`
	Search   string          `json:"search"`
}

// Valid: pertenencia al conjunto cerrado de filtros rápidos
func (q QuickFilter) Valid() bool {
	switch q {
	case QuickMonth, QuickQuarter, QuickYear, QuickAll:
		return true
	}
	return false
}

// ResolveQuickRange: traduce el filtro rápido a un rango de fechas concreto.
// month/quarter/year se calculan sobre "now"; all limpia ambos límites.
func ResolveQuickRange(q QuickFilter, now time.Time) (from, to string) {
	switch q {
	case QuickMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		return first.Format("2006-01-02"), last.Format("2006-01-02")
	case QuickQuarter:
		// índice de trimestre = mes (base 0) / 3
		quarter := (int(now.Month()) - 1) / 3
		first := time.Date(now.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 3, -1)
		return first.Format("2006-01-02"), last.Format("2006-01-02")
	case QuickYear:
		return now.Format("2006") + "-01-01", now.Format("2006") + "-12-31"
	default:
		// "all" o desconocido: sin límites
		return "", ""
	}
}

// WithQuickRange: aplica un filtro rápido sobrescribiendo los límites
// explícitos; los demás campos quedan intactos.
func (f Filters) WithQuickRange(q QuickFilter, now time.Time) Filters {
	f.DateFrom, f.DateTo = ResolveQuickRange(q, now)
	return f
}

// Apply: subconjunto filtrado de la colección. Puro e idempotente, nunca
// modifica la entrada.
func (f Filters) Apply(txs []models.Transaction) []models.Transaction {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.DateFrom != "" && t.Date < f.DateFrom {
			continue
		}
		if f.DateTo != "" && t.Date > f.DateTo {
			continue
		}
		if f.Project != "" && t.Project != f.Project {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// búsqueda por subcadena, sin distinguir mayúsculas, sobre descripción,
// obra y categoría
func matchesSearch(t models.Transaction, search string) bool {
	return strings.Contains(strings.ToLower(t.Description), search) ||
		strings.Contains(strings.ToLower(t.Project), search) ||
		strings.Contains(strings.ToLower(string(t.Category)), search)
}
