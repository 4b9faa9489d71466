package metrics

import (
	"sort"
	"strings"
	"time"

	"fincontrol-backend/internal/models"
)

// Config - umbrales de alertas, suministrados por el entorno
type Config struct {
	OverdueDays      int     // días para considerar vencida una transacción pendiente
	PayablesLimit    float64 // límite de alerta para CXP
	ReceivablesLimit float64 // límite de alerta para CXC
}

func DefaultConfig() Config {
	return Config{
		OverdueDays:      15,
		PayablesLimit:    15000,
		ReceivablesLimit: 15000,
	}
}

type TrendPoint struct {
	Month   string  `json:"month"` // "YYYY-MM"
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type CategorySlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type ProjectMargin struct {
	Project string  `json:"project"` // primer token del nombre de la obra
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Margin  float64 `json:"margin"` // porcentaje, 0 si no hay ingresos
}

type CashFlowPoint struct {
	Date       string  `json:"date"`
	Cumulative float64 `json:"cumulative"`
}

type DebtComparison struct {
	CXC float64 `json:"cxc"` // cuentas por cobrar pendientes
	CXP float64 `json:"cxp"` // cuentas por pagar pendientes
}

type Alerts struct {
	NegativeBalance     bool `json:"negative_balance"`
	HighCXP             bool `json:"high_cxp"`
	HighCXC             bool `json:"high_cxc"`
	HasOverdue          bool `json:"has_overdue"`
	HasNegativeProjects bool `json:"has_negative_projects"`
}

type Metrics struct {
	TotalIncome          float64              `json:"total_income"`
	TotalExpenses        float64              `json:"total_expenses"`
	NetBalance           float64              `json:"net_balance"`
	PendingPayables      float64              `json:"pending_payables"`
	PendingReceivables   float64              `json:"pending_receivables"`
	MonthlyTrend         []TrendPoint         `json:"monthly_trend"`
	CategoryDistribution []CategorySlice      `json:"category_distribution"`
	ProjectMargins       []ProjectMargin      `json:"project_margins"`
	CashFlowData         []CashFlowPoint      `json:"cash_flow_data"`
	DebtComparison       DebtComparison       `json:"debt_comparison"`
	OverdueTransactions  []models.Transaction `json:"overdue_transactions"`
	NegativeProjects     []ProjectMargin      `json:"negative_projects"`
	Alerts               Alerts               `json:"alerts"`
}

// Compute: métricas agregadas sobre el subconjunto ya filtrado.
// Función pura: no modifica la entrada ni guarda estado entre llamadas.
func Compute(txs []models.Transaction, cfg Config, now time.Time) Metrics {
	m := Metrics{
		MonthlyTrend:         []TrendPoint{},
		CategoryDistribution: []CategorySlice{},
		ProjectMargins:       []ProjectMargin{},
		CashFlowData:         []CashFlowPoint{},
		OverdueTransactions:  []models.Transaction{},
		NegativeProjects:     []ProjectMargin{},
	}

	// totales y pendientes
	for _, t := range txs {
		switch t.Type {
		case models.TxIncome:
			m.TotalIncome += t.Amount
			if t.Status == models.StatusPending {
				m.PendingReceivables += t.Amount
			}
		case models.TxExpense:
			m.TotalExpenses += t.Amount
			if t.Status == models.StatusPending {
				m.PendingPayables += t.Amount
			}
		}
	}
	m.NetBalance = m.TotalIncome - m.TotalExpenses
	m.DebtComparison = DebtComparison{CXC: m.PendingReceivables, CXP: m.PendingPayables}

	// tendencia mensual: agrupar por prefijo "YYYY-MM" y ordenar ascendente
	trend := make(map[string]*TrendPoint)
	for _, t := range txs {
		month := monthOf(t.Date)
		if month == "" {
			continue
		}
		p, ok := trend[month]
		if !ok {
			p = &TrendPoint{Month: month}
			trend[month] = p
		}
		if t.Type == models.TxIncome {
			p.Income += t.Amount
		} else {
			p.Expense += t.Amount
		}
	}
	for _, p := range trend {
		m.MonthlyTrend = append(m.MonthlyTrend, *p)
	}
	sort.Slice(m.MonthlyTrend, func(i, j int) bool {
		return m.MonthlyTrend[i].Month < m.MonthlyTrend[j].Month
	})

	// distribución por categoría: solo gastos, en orden de primera aparición
	catIndex := make(map[string]int)
	for _, t := range txs {
		if t.Type != models.TxExpense {
			continue
		}
		name := string(t.Category)
		idx, ok := catIndex[name]
		if !ok {
			catIndex[name] = len(m.CategoryDistribution)
			m.CategoryDistribution = append(m.CategoryDistribution, CategorySlice{Name: name})
			idx = catIndex[name]
		}
		m.CategoryDistribution[idx].Value += t.Amount
	}

	// márgenes por obra: se agrupa por el primer token del nombre (así se
	// abrevian las obras de nombre largo en pantalla)
	projIndex := make(map[string]int)
	for _, t := range txs {
		key := projectKey(t.Project)
		idx, ok := projIndex[key]
		if !ok {
			projIndex[key] = len(m.ProjectMargins)
			m.ProjectMargins = append(m.ProjectMargins, ProjectMargin{Project: key})
			idx = projIndex[key]
		}
		if t.Type == models.TxIncome {
			m.ProjectMargins[idx].Income += t.Amount
		} else {
			m.ProjectMargins[idx].Expense += t.Amount
		}
	}
	for i := range m.ProjectMargins {
		p := &m.ProjectMargins[i]
		// sin ingresos el margen es 0, nunca NaN ni infinito
		if p.Income > 0 {
			p.Margin = (p.Income - p.Expense) / p.Income * 100
		}
		if p.Income > 0 && p.Expense > p.Income {
			m.NegativeProjects = append(m.NegativeProjects, *p)
		}
	}

	// flujo de caja proyectado: orden ascendente por fecha (estable, para que
	// varias transacciones del mismo día conserven su orden de entrada) y
	// suma acumulada, un punto por transacción
	ordered := make([]models.Transaction, len(txs))
	copy(ordered, txs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date < ordered[j].Date
	})
	var cumulative float64
	for _, t := range ordered {
		if t.Type == models.TxIncome {
			cumulative += t.Amount
		} else {
			cumulative -= t.Amount
		}
		m.CashFlowData = append(m.CashFlowData, CashFlowPoint{Date: t.Date, Cumulative: cumulative})
	}

	// vencidas: pendientes con antigüedad mayor al umbral
	for _, t := range txs {
		if t.Status == models.StatusPending && AgeDays(t.Date, now) > cfg.OverdueDays {
			m.OverdueTransactions = append(m.OverdueTransactions, t)
		}
	}

	m.Alerts = Alerts{
		NegativeBalance:     m.NetBalance < 0,
		HighCXP:             m.PendingPayables > cfg.PayablesLimit,
		HighCXC:             m.PendingReceivables > cfg.ReceivablesLimit,
		HasOverdue:          len(m.OverdueTransactions) > 0,
		HasNegativeProjects: len(m.NegativeProjects) > 0,
	}

	return m
}

// AgeDays: antigüedad en días completos de una fecha "YYYY-MM-DD" respecto a
// now. Fecha mal formada cuenta como 0 días.
func AgeDays(date string, now time.Time) int {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	diff := now.UTC().Sub(d)
	if diff < 0 {
		return 0
	}
	return int(diff.Hours() / 24)
}

// monthOf: prefijo "YYYY-MM" de una fecha "YYYY-MM-DD"
func monthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}

// projectKey: primer token del nombre de la obra
func projectKey(project string) string {
	fields := strings.Fields(project)
	if len(fields) == 0 {
		return project
	}
	return fields[0]
}
