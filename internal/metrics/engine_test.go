package metrics

import (
	"math"
	"reflect"
	"testing"
	"time"

	"fincontrol-backend/internal/models"
)

func tx(id, date string, txType models.TxType, amount float64, status models.TxStatus, category models.Category, project string) models.Transaction {
	return models.Transaction{
		ID:          id,
		Date:        date,
		Description: "mov " + id,
		Amount:      amount,
		Type:        txType,
		Category:    category,
		Project:     project,
		Status:      status,
	}
}

func TestCompute_TotalsAndPending(t *testing.T) {
	// "hoy" muy lejos en el futuro: la pendiente del 15 de enero ya venció
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("1", "2024-01-01", models.TxIncome, 1000, models.StatusPaid, models.CategoryOther, "Torre Norte"),
		tx("2", "2024-01-15", models.TxExpense, 400, models.StatusPending, models.CategoryMaterials, "Torre Norte"),
	}

	m := Compute(txs, DefaultConfig(), now)

	if m.TotalIncome != 1000 || m.TotalExpenses != 400 {
		t.Fatalf("totales = (%.2f, %.2f), want (1000, 400)", m.TotalIncome, m.TotalExpenses)
	}
	if m.NetBalance != 600 {
		t.Errorf("NetBalance = %.2f, want 600", m.NetBalance)
	}
	if m.PendingPayables != 400 || m.PendingReceivables != 0 {
		t.Errorf("pendientes = (CXP %.2f, CXC %.2f), want (400, 0)", m.PendingPayables, m.PendingReceivables)
	}
	if m.DebtComparison.CXP != 400 || m.DebtComparison.CXC != 0 {
		t.Errorf("DebtComparison = %+v", m.DebtComparison)
	}
	if len(m.OverdueTransactions) != 1 || m.OverdueTransactions[0].ID != "2" {
		t.Errorf("OverdueTransactions = %v, se esperaba solo el gasto pendiente", m.OverdueTransactions)
	}
	if !m.Alerts.HasOverdue {
		t.Error("HasOverdue debería estar activa")
	}
}

func TestCompute_NetBalanceIdentity(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("1", "2024-01-01", models.TxIncome, 1234.56, models.StatusPaid, models.CategoryOther, "Torre Norte"),
		tx("2", "2024-01-02", models.TxExpense, 234.56, models.StatusPaid, models.CategoryMaterials, "Torre Norte"),
		tx("3", "2024-02-01", models.TxIncome, 80, models.StatusPending, models.CategoryOther, "General"),
		tx("4", "2024-03-01", models.TxExpense, 1000, models.StatusPending, models.CategorySalaries, "General"),
	}

	m := Compute(txs, DefaultConfig(), now)
	if m.NetBalance != m.TotalIncome-m.TotalExpenses {
		t.Errorf("NetBalance %.4f != TotalIncome-TotalExpenses %.4f", m.NetBalance, m.TotalIncome-m.TotalExpenses)
	}
}

func TestCompute_MonthlyTrendOrdered(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("1", "2024-03-10", models.TxIncome, 100, models.StatusPaid, models.CategoryOther, "General"),
		tx("2", "2024-01-05", models.TxExpense, 50, models.StatusPaid, models.CategoryMaterials, "General"),
		tx("3", "2024-02-20", models.TxIncome, 70, models.StatusPaid, models.CategoryOther, "General"),
		tx("4", "2024-01-25", models.TxIncome, 30, models.StatusPending, models.CategoryOther, "General"),
	}

	m := Compute(txs, DefaultConfig(), now)

	months := make([]string, 0, len(m.MonthlyTrend))
	for _, p := range m.MonthlyTrend {
		months = append(months, p.Month)
	}
	want := []string{"2024-01", "2024-02", "2024-03"}
	if !reflect.DeepEqual(months, want) {
		t.Fatalf("meses = %v, want %v", months, want)
	}
	if m.MonthlyTrend[0].Income != 30 || m.MonthlyTrend[0].Expense != 50 {
		t.Errorf("enero = %+v, want income 30 / expense 50", m.MonthlyTrend[0])
	}
}

func TestCompute_CategoryDistributionSumsToExpenses(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("1", "2024-01-01", models.TxExpense, 100, models.StatusPaid, models.CategoryMaterials, "General"),
		tx("2", "2024-01-02", models.TxExpense, 200, models.StatusPaid, models.CategorySalaries, "General"),
		tx("3", "2024-01-03", models.TxExpense, 50, models.StatusPending, models.CategoryMaterials, "General"),
		tx("4", "2024-01-04", models.TxIncome, 999, models.StatusPaid, models.CategoryOther, "General"),
	}

	m := Compute(txs, DefaultConfig(), now)

	var sum float64
	for _, c := range m.CategoryDistribution {
		sum += c.Value
	}
	if sum != m.TotalExpenses {
		t.Errorf("suma de categorías %.2f != gastos totales %.2f", sum, m.TotalExpenses)
	}

	// orden de primera aparición: Materiales antes que Salarios
	if m.CategoryDistribution[0].Name != string(models.CategoryMaterials) {
		t.Errorf("primera categoría = %s, want Materiales", m.CategoryDistribution[0].Name)
	}
	// los ingresos no aparecen en la distribución
	for _, c := range m.CategoryDistribution {
		if c.Name == string(models.CategoryOther) {
			t.Errorf("la distribución incluyó una categoría solo de ingresos")
		}
	}
}

func TestCompute_ProjectMargins(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		// "Torre Norte" y "Torre Sur" se agrupan ambas bajo "Torre"
		tx("1", "2024-01-01", models.TxIncome, 1000, models.StatusPaid, models.CategoryOther, "Torre Norte"),
		tx("2", "2024-01-02", models.TxExpense, 400, models.StatusPaid, models.CategoryMaterials, "Torre Sur"),
		// obra sin ingresos: margen 0, nunca NaN ni infinito
		tx("3", "2024-01-03", models.TxExpense, 700, models.StatusPaid, models.CategorySalaries, "General"),
		// obra perdiendo plata
		tx("4", "2024-01-04", models.TxIncome, 100, models.StatusPaid, models.CategoryOther, "Puente Río Claro"),
		tx("5", "2024-01-05", models.TxExpense, 300, models.StatusPaid, models.CategoryMaterials, "Puente Río Claro"),
	}

	m := Compute(txs, DefaultConfig(), now)

	byKey := make(map[string]ProjectMargin)
	for _, p := range m.ProjectMargins {
		byKey[p.Project] = p
	}

	torre, ok := byKey["Torre"]
	if !ok {
		t.Fatalf("no se agrupó por el primer token: %v", m.ProjectMargins)
	}
	if torre.Income != 1000 || torre.Expense != 400 || torre.Margin != 60 {
		t.Errorf("Torre = %+v, want income 1000 / expense 400 / margin 60", torre)
	}

	general := byKey["General"]
	if general.Margin != 0 || math.IsNaN(general.Margin) || math.IsInf(general.Margin, 0) {
		t.Errorf("margen sin ingresos = %v, want 0", general.Margin)
	}

	if len(m.NegativeProjects) != 1 || m.NegativeProjects[0].Project != "Puente" {
		t.Errorf("NegativeProjects = %v, want solo Puente", m.NegativeProjects)
	}
	if !m.Alerts.HasNegativeProjects {
		t.Error("HasNegativeProjects debería estar activa")
	}
}

func TestCompute_CashFlowRecurrence(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("1", "2024-01-03", models.TxExpense, 200, models.StatusPending, models.CategoryMaterials, "General"),
		tx("2", "2024-01-01", models.TxIncome, 1000, models.StatusPaid, models.CategoryOther, "General"),
		// dos movimientos el mismo día: dos puntos separados
		tx("3", "2024-01-03", models.TxIncome, 50, models.StatusPaid, models.CategoryOther, "General"),
	}

	m := Compute(txs, DefaultConfig(), now)

	if len(m.CashFlowData) != 3 {
		t.Fatalf("CashFlowData tiene %d puntos, want 3 (uno por transacción)", len(m.CashFlowData))
	}
	if m.CashFlowData[0].Date != "2024-01-01" || m.CashFlowData[0].Cumulative != 1000 {
		t.Errorf("primer punto = %+v", m.CashFlowData[0])
	}
	// recurrencia: cada punto = anterior +/- monto
	if m.CashFlowData[1].Cumulative != 800 || m.CashFlowData[2].Cumulative != 850 {
		t.Errorf("acumulados = %+v", m.CashFlowData)
	}
}

func TestCompute_Alerts(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{OverdueDays: 15, PayablesLimit: 500, ReceivablesLimit: 500}

	txs := []models.Transaction{
		tx("1", "2024-05-30", models.TxExpense, 600, models.StatusPending, models.CategoryMaterials, "General"),
		tx("2", "2024-05-30", models.TxIncome, 700, models.StatusPending, models.CategoryOther, "General"),
	}

	m := Compute(txs, cfg, now)

	if !m.Alerts.HighCXP || !m.Alerts.HighCXC {
		t.Errorf("alertas de límites = %+v, ambas deberían estar activas", m.Alerts)
	}
	if m.Alerts.HasOverdue {
		t.Error("nada venció todavía, HasOverdue debería estar inactiva")
	}
	if m.Alerts.NegativeBalance {
		t.Error("el balance es positivo")
	}

	// balance negativo
	m2 := Compute([]models.Transaction{
		tx("3", "2024-05-01", models.TxExpense, 100, models.StatusPaid, models.CategoryMaterials, "General"),
	}, cfg, now)
	if !m2.Alerts.NegativeBalance {
		t.Error("NegativeBalance debería estar activa")
	}
}

func TestCompute_EmptyInput(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	m := Compute(nil, DefaultConfig(), now)

	if m.TotalIncome != 0 || m.NetBalance != 0 {
		t.Errorf("colección vacía: %+v", m)
	}
	if m.MonthlyTrend == nil || m.CategoryDistribution == nil || m.CashFlowData == nil {
		t.Error("las series deben ser vacías pero bien formadas, no nil")
	}
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("2", "2024-02-01", models.TxExpense, 10, models.StatusPaid, models.CategoryMaterials, "General"),
		tx("1", "2024-01-01", models.TxIncome, 20, models.StatusPaid, models.CategoryOther, "General"),
	}
	original := make([]models.Transaction, len(txs))
	copy(original, txs)

	Compute(txs, DefaultConfig(), now)

	if !reflect.DeepEqual(txs, original) {
		t.Error("Compute modificó la colección de entrada")
	}
}

func TestAgeDays(t *testing.T) {
	now := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		date string
		want int
	}{
		{"2024-01-31", 0},
		{"2024-01-30", 1},
		{"2024-01-01", 30},
		{"2024-02-15", 0}, // fecha futura no cuenta antigüedad
		{"mala-fecha", 0},
	}

	for _, tt := range tests {
		if got := AgeDays(tt.date, now); got != tt.want {
			t.Errorf("AgeDays(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}
