package dashboard

import (
	"encoding/json"
	"time"

	"fincontrol-backend/internal/cache"
	"fincontrol-backend/internal/config"
	"fincontrol-backend/internal/database"
	"fincontrol-backend/internal/metrics"
	"fincontrol-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Filters      metrics.Filters      `json:"filters"`
	Metrics      metrics.Metrics      `json:"metrics"`
	Transactions []models.Transaction `json:"transactions"` // subconjunto filtrado
}

// ParseFilters: arma la configuración de filtros desde la query. El filtro
// rápido (quick) recalcula y sobrescribe los límites de fecha explícitos.
func ParseFilters(c *fiber.Ctx, now time.Time) (metrics.Filters, error) {
	f := metrics.Filters{
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Project:  c.Query("project"),
		Category: models.Category(c.Query("category")),
		Type:     models.TxType(c.Query("type")),
		Status:   models.TxStatus(c.Query("status")),
		Search:   c.Query("search"),
	}

	if f.Type != "" && !models.IsValidTxType(f.Type) {
		return f, fiber.NewError(fiber.StatusBadRequest, "type debe ser 'income' o 'expense'")
	}
	if f.Status != "" && !models.IsValidTxStatus(f.Status) {
		return f, fiber.NewError(fiber.StatusBadRequest, "status debe ser 'pending' o 'paid'")
	}
	for _, field := range []string{f.DateFrom, f.DateTo} {
		if field != "" {
			if _, err := time.Parse("2006-01-02", field); err != nil {
				return f, fiber.NewError(fiber.StatusBadRequest, "Las fechas deben tener formato 'YYYY-MM-DD'")
			}
		}
	}

	if quick := c.Query("quick"); quick != "" {
		qf := metrics.QuickFilter(quick)
		if !qf.Valid() {
			return f, fiber.NewError(fiber.StatusBadRequest, "quick debe ser 'month', 'quarter', 'year' o 'all'")
		}
		f = f.WithQuickRange(qf, now)
	}

	return f, nil
}

// EngineConfig: umbrales del motor a partir de la configuración del servicio
func EngineConfig(cfg *config.Config) metrics.Config {
	return metrics.Config{
		OverdueDays:      cfg.OverdueDays,
		PayablesLimit:    cfg.PayablesLimit,
		ReceivablesLimit: cfg.ReceivablesLimit,
	}
}

// GET /api/dashboard/metrics
// ?quick=month | ?date_from=&date_to= | &project=&category=&type=&status=&search=
func MetricsHandler(cfg *config.Config, cch *cache.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now().UTC()

		filters, err := ParseFilters(c, now)
		if err != nil {
			return err
		}

		// la query completa identifica la respuesta en el cache
		cacheKey := string(c.Request().URI().QueryString())
		if payload, ok := cch.Get(c.Context(), cacheKey); ok {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(payload)
		}

		var txs []models.Transaction
		if err := database.DB.Order("date DESC, created_at DESC").Find(&txs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron leer las transacciones")
		}

		filtered := filters.Apply(txs)
		resp := Response{
			Filters:      filters,
			Metrics:      metrics.Compute(filtered, EngineConfig(cfg), now),
			Transactions: filtered,
		}

		payload, err := json.Marshal(resp)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo serializar la respuesta")
		}
		cch.Set(c.Context(), cacheKey, payload)

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(payload)
	}
}
