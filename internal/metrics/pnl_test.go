package metrics

import (
	"testing"

	"fincontrol-backend/internal/models"
)

func TestComputePnL(t *testing.T) {
	txs := []models.Transaction{
		tx("1", "2024-03-05", models.TxIncome, 5000, models.StatusPaid, models.CategoryOther, "Torre Norte"),
		tx("2", "2024-03-12", models.TxIncome, 2000, models.StatusPending, models.CategoryOther, "Torre Norte"),
		tx("3", "2024-03-15", models.TxExpense, 1200, models.StatusPaid, models.CategoryMaterials, "Torre Norte"),
		tx("4", "2024-03-20", models.TxExpense, 800, models.StatusPending, models.CategoryMaterials, "General"),
		tx("5", "2024-03-25", models.TxExpense, 500, models.StatusPaid, models.CategorySalaries, "General"),
		// fuera del mes
		tx("6", "2024-02-28", models.TxIncome, 9999, models.StatusPaid, models.CategoryOther, "General"),
		tx("7", "2024-04-01", models.TxExpense, 9999, models.StatusPaid, models.CategoryMaterials, "General"),
	}

	r := ComputePnL(txs, "2024-03")

	if r.TotalIncome != 7000 || r.TotalExpenses != 2500 {
		t.Fatalf("totales = (%.2f, %.2f), want (7000, 2500)", r.TotalIncome, r.TotalExpenses)
	}
	if r.Net != 4500 {
		t.Errorf("Net = %.2f, want 4500", r.Net)
	}

	// el corte es puro por mes: el estado no influye
	if len(r.IncomeByCategory) != 1 || r.IncomeByCategory[0].Total != 7000 {
		t.Errorf("IncomeByCategory = %v", r.IncomeByCategory)
	}
	if len(r.ExpenseByCategory) != 2 {
		t.Fatalf("ExpenseByCategory = %v, want 2 categorías", r.ExpenseByCategory)
	}
	if r.ExpenseByCategory[0].Category != string(models.CategoryMaterials) || r.ExpenseByCategory[0].Total != 2000 {
		t.Errorf("Materiales = %+v, want 2000", r.ExpenseByCategory[0])
	}
	if r.ExpenseByCategory[1].Category != string(models.CategorySalaries) || r.ExpenseByCategory[1].Total != 500 {
		t.Errorf("Salarios = %+v, want 500", r.ExpenseByCategory[1])
	}
}

func TestComputePnL_EmptyMonth(t *testing.T) {
	txs := []models.Transaction{
		tx("1", "2024-03-05", models.TxIncome, 100, models.StatusPaid, models.CategoryOther, "General"),
	}

	r := ComputePnL(txs, "2024-07")

	if r.TotalIncome != 0 || r.TotalExpenses != 0 || r.Net != 0 {
		t.Errorf("mes sin movimientos: %+v", r)
	}
	if r.IncomeByCategory == nil || r.ExpenseByCategory == nil {
		t.Error("las listas deben ser vacías pero no nil")
	}
}
