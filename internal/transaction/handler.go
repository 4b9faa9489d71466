package transaction

import (
	"fmt"
	"log"
	"strings"
	"time"

	"fincontrol-backend/internal/audit"
	"fincontrol-backend/internal/auth"
	"fincontrol-backend/internal/cache"
	"fincontrol-backend/internal/config"
	"fincontrol-backend/internal/database"
	"fincontrol-backend/internal/models"
	"fincontrol-backend/internal/realtime"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request Types
// -------------------------

type CreateTransactionRequest struct {
	Date        string  `json:"date"` // "2025-12-09"
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`     // "income" | "expense"
	Category    string  `json:"category"` // lista cerrada
	Project     string  `json:"project"`  // lista cerrada + "General"
	Status      string  `json:"status"`   // "pending" | "paid"
}

type UpdateTransactionRequest struct {
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Type        *string  `json:"type"`
	Category    *string  `json:"category"`
	Project     *string  `json:"project"`
}

type AddNoteRequest struct {
	Text string `json:"text"`
}

// -------------------------
// Validación de campos (la lista cerrada de obras viene de config)
// -------------------------

func validateFields(cfg *config.Config, date, description string, amount float64, txType, category, project, status string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "El formato de la fecha debe ser 'YYYY-MM-DD'")
	}
	if strings.TrimSpace(description) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "La descripción no puede estar vacía")
	}
	if amount < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "El monto no puede ser negativo")
	}
	if !models.IsValidTxType(models.TxType(txType)) {
		return fiber.NewError(fiber.StatusBadRequest, "type debe ser 'income' o 'expense'")
	}
	if !models.IsValidCategory(models.Category(category)) {
		return fiber.NewError(fiber.StatusBadRequest, "Categoría fuera de la lista permitida")
	}
	if !cfg.HasProject(project) {
		return fiber.NewError(fiber.StatusBadRequest, "Obra fuera de la lista permitida")
	}
	if !models.IsValidTxStatus(models.TxStatus(status)) {
		return fiber.NewError(fiber.StatusBadRequest, "status debe ser 'pending' o 'paid'")
	}
	return nil
}

// notifyChange: invalida el cache y avisa a los clientes conectados
func notifyChange(c *fiber.Ctx, cch *cache.Client, hub *realtime.Hub, event, txID string) {
	cch.Flush(c.Context())
	hub.Broadcast(event, txID)
}

// -------------------------
// CRUD
// -------------------------

// POST /api/transactions
func CreateTransactionHandler(cfg *config.Config, cch *cache.Client, hub *realtime.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la solicitud inválido")
		}

		body.Description = strings.TrimSpace(body.Description)
		if body.Status == "" {
			body.Status = string(models.StatusPending)
		}

		if err := validateFields(cfg, body.Date, body.Description, body.Amount, body.Type, body.Category, body.Project, body.Status); err != nil {
			return err
		}

		email, err := auth.CurrentUserEmail(c)
		if err != nil {
			return err
		}

		tx := models.Transaction{
			Date:        body.Date,
			Description: body.Description,
			Amount:      body.Amount,
			Type:        models.TxType(body.Type),
			Category:    models.Category(body.Category),
			Project:     body.Project,
			Status:      models.TxStatus(body.Status),
		}

		if err := database.DB.Create(&tx).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la transacción")
		}

		// primera nota de la bitácora, generada por el sistema
		if logErr := audit.WriteNote(audit.NoteOptions{
			TransactionID: tx.ID,
			Text:          audit.CreationText(&tx),
			UserEmail:     email,
			Origin:        models.NoteOriginSystem,
		}); logErr != nil {
			log.Printf("No se pudo escribir la nota de creación: %v", logErr)
		}

		notifyChange(c, cch, hub, "transaction_created", tx.ID)

		database.DB.Preload("Notes").First(&tx, "id = ?", tx.ID)
		return c.Status(fiber.StatusCreated).JSON(tx)
	}
}

// GET /api/transactions
// Snapshot completo del libro, con bitácora, más reciente primero
func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var txs []models.Transaction
		if err := database.DB.Preload("Notes").
			Order("date DESC, created_at DESC").
			Find(&txs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las transacciones")
		}
		return c.JSON(txs)
	}
}

// GET /api/transactions/:id
func GetTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tx models.Transaction
		if err := database.DB.Preload("Notes").First(&tx, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transacción no encontrada")
		}
		return c.JSON(tx)
	}
}

// PUT /api/transactions/:id
// Reemplaza campos y agrega una nota de edición a la bitácora
func UpdateTransactionHandler(cfg *config.Config, cch *cache.Client, hub *realtime.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tx models.Transaction
		if err := database.DB.First(&tx, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transacción no encontrada")
		}

		var body UpdateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la solicitud inválido")
		}

		var changed []string
		if body.Date != nil && *body.Date != tx.Date {
			tx.Date = *body.Date
			changed = append(changed, "fecha")
		}
		if body.Description != nil && strings.TrimSpace(*body.Description) != tx.Description {
			tx.Description = strings.TrimSpace(*body.Description)
			changed = append(changed, "descripción")
		}
		if body.Amount != nil && *body.Amount != tx.Amount {
			tx.Amount = *body.Amount
			changed = append(changed, "monto")
		}
		if body.Type != nil && models.TxType(*body.Type) != tx.Type {
			tx.Type = models.TxType(*body.Type)
			changed = append(changed, "tipo")
		}
		if body.Category != nil && models.Category(*body.Category) != tx.Category {
			tx.Category = models.Category(*body.Category)
			changed = append(changed, "categoría")
		}
		if body.Project != nil && *body.Project != tx.Project {
			tx.Project = *body.Project
			changed = append(changed, "obra")
		}

		if err := validateFields(cfg, tx.Date, tx.Description, tx.Amount, string(tx.Type), string(tx.Category), tx.Project, string(tx.Status)); err != nil {
			return err
		}

		if len(changed) == 0 {
			database.DB.Preload("Notes").First(&tx, "id = ?", tx.ID)
			return c.JSON(tx)
		}

		if err := database.DB.Save(&tx).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la transacción")
		}

		email, err := auth.CurrentUserEmail(c)
		if err != nil {
			return err
		}
		if logErr := audit.WriteNote(audit.NoteOptions{
			TransactionID: tx.ID,
			Text:          audit.EditText(changed),
			UserEmail:     email,
			Origin:        models.NoteOriginSystem,
		}); logErr != nil {
			log.Printf("No se pudo escribir la nota de edición: %v", logErr)
		}

		notifyChange(c, cch, hub, "transaction_updated", tx.ID)

		database.DB.Preload("Notes").First(&tx, "id = ?", tx.ID)
		return c.JSON(tx)
	}
}

// POST /api/transactions/:id/status (solo admin)
// Alterna entre pending y paid y lo deja asentado en la bitácora
func ToggleStatusHandler(cch *cache.Client, hub *realtime.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tx models.Transaction
		if err := database.DB.First(&tx, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transacción no encontrada")
		}

		from := tx.Status
		if tx.Status == models.StatusPending {
			tx.Status = models.StatusPaid
		} else {
			tx.Status = models.StatusPending
		}

		if err := database.DB.Save(&tx).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cambiar el estado")
		}

		email, err := auth.CurrentUserEmail(c)
		if err != nil {
			return err
		}
		if logErr := audit.WriteNote(audit.NoteOptions{
			TransactionID: tx.ID,
			Text:          audit.StatusText(from, tx.Status),
			UserEmail:     email,
			Origin:        models.NoteOriginSystem,
		}); logErr != nil {
			log.Printf("No se pudo escribir la nota de estado: %v", logErr)
		}

		notifyChange(c, cch, hub, "transaction_updated", tx.ID)

		database.DB.Preload("Notes").First(&tx, "id = ?", tx.ID)
		return c.JSON(tx)
	}
}

// DELETE /api/transactions/:id (solo admin)
// Borrado definitivo, la bitácora se va con la transacción
func DeleteTransactionHandler(cch *cache.Client, hub *realtime.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tx models.Transaction
		if err := database.DB.First(&tx, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transacción no encontrada")
		}

		if err := database.DB.Select("Notes").Delete(&tx).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la transacción")
		}

		notifyChange(c, cch, hub, "transaction_deleted", tx.ID)

		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("Transacción %s eliminada", tx.ID),
		})
	}
}

// POST /api/transactions/:id/notes
// Anotación manual del usuario, siempre al final de la bitácora
func AddNoteHandler(cch *cache.Client, hub *realtime.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tx models.Transaction
		if err := database.DB.First(&tx, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transacción no encontrada")
		}

		var body AddNoteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la solicitud inválido")
		}
		body.Text = strings.TrimSpace(body.Text)
		if body.Text == "" {
			return fiber.NewError(fiber.StatusBadRequest, "La nota no puede estar vacía")
		}

		email, err := auth.CurrentUserEmail(c)
		if err != nil {
			return err
		}

		if err := audit.WriteNote(audit.NoteOptions{
			TransactionID: tx.ID,
			Text:          body.Text,
			UserEmail:     email,
			Origin:        models.NoteOriginUser,
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la nota")
		}

		notifyChange(c, cch, hub, "transaction_updated", tx.ID)

		database.DB.Preload("Notes").First(&tx, "id = ?", tx.ID)
		return c.Status(fiber.StatusCreated).JSON(tx)
	}
}
