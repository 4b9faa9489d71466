package report

import (
	"time"

	"fincontrol-backend/internal/database"
	"fincontrol-backend/internal/metrics"
	"fincontrol-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Los reportes siempre recorren el libro completo, sin los filtros del
// tablero. Es el comportamiento acordado con la administración: el reporte
// muestra todo el libro aunque el tablero esté filtrado.

func loadAll() ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := database.DB.Order("date ASC, created_at ASC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// GET /api/reports/aging?type=income|expense
func AgingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		txType := models.TxType(c.Query("type"))
		if !models.IsValidTxType(txType) {
			return fiber.NewError(fiber.StatusBadRequest, "type debe ser 'income' o 'expense'")
		}

		txs, err := loadAll()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron leer las transacciones")
		}

		return c.JSON(metrics.ComputeAging(txs, txType, time.Now().UTC()))
	}
}

// GET /api/reports/pnl?month=YYYY-MM
func PnLHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		month := c.Query("month")
		if _, err := time.Parse("2006-01", month); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month debe tener formato 'YYYY-MM'")
		}

		txs, err := loadAll()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron leer las transacciones")
		}

		return c.JSON(metrics.ComputePnL(txs, month))
	}
}

// GET /api/reports/cashflow
// Flujo realizado: solo transacciones liquidadas, mes a mes
func CashFlowHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		txs, err := loadAll()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron leer las transacciones")
		}

		return c.JSON(metrics.ComputeCashFlow(txs))
	}
}
