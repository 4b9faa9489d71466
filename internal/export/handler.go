package export

import (
	"fmt"
	"time"

	"fincontrol-backend/internal/auth"
	"fincontrol-backend/internal/config"
	"fincontrol-backend/internal/dashboard"
	"fincontrol-backend/internal/database"
	"fincontrol-backend/internal/metrics"
	"fincontrol-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/export/report
// Acepta los mismos parámetros de filtro que el tablero y exporta exactamente
// las mismas métricas y el mismo listado filtrado que se ve en pantalla.
func ReportHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now().UTC()

		filters, err := dashboard.ParseFilters(c, now)
		if err != nil {
			return err
		}

		email, err := auth.CurrentUserEmail(c)
		if err != nil {
			return err
		}

		var txs []models.Transaction
		if err := database.DB.Order("date DESC, created_at DESC").Find(&txs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron leer las transacciones")
		}

		filtered := filters.Apply(txs)
		m := metrics.Compute(filtered, dashboard.EngineConfig(cfg), now)

		doc := BuildDocument(m, filtered, now, email)
		f, err := WriteWorkbook(doc)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte")
		}

		filename := fmt.Sprintf("reporte-financiero-%s.xlsx", now.Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))

		if err := f.Write(c.Response().BodyWriter()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo escribir el archivo")
		}
		return nil
	}
}
