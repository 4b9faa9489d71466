package audit

import (
	"fmt"

	"fincontrol-backend/internal/database"
	"fincontrol-backend/internal/models"
)

// NoteOptions - datos para una entrada de la bitácora de una transacción
type NoteOptions struct {
	TransactionID string
	Text          string
	UserEmail     string
	Origin        models.NoteOrigin
}

// WriteNote: agrega una entrada a la bitácora. La bitácora es solo de
// inserción, las entradas nunca se editan ni se borran individualmente.
func WriteNote(opts NoteOptions) error {
	note := models.TransactionNote{
		TransactionID: opts.TransactionID,
		Text:          opts.Text,
		UserEmail:     opts.UserEmail,
		Origin:        opts.Origin,
	}

	if err := database.DB.Create(&note).Error; err != nil {
		return fmt.Errorf("no se pudo guardar la nota: %w", err)
	}
	return nil
}

// CreationText: texto de la nota de sistema que se genera al crear el registro
func CreationText(t *models.Transaction) string {
	kind := "Ingreso"
	if t.Type == models.TxExpense {
		kind = "Gasto"
	}
	return fmt.Sprintf("%s registrado: %.2f - %s", kind, t.Amount, t.Description)
}

// EditText: texto de la nota de sistema al editar campos
func EditText(changed []string) string {
	if len(changed) == 0 {
		return "Registro editado"
	}
	text := "Registro editado, campos: "
	for i, f := range changed {
		if i > 0 {
			text += ", "
		}
		text += f
	}
	return text
}

// StatusText: texto de la nota de sistema al cambiar el estado
func StatusText(from, to models.TxStatus) string {
	return fmt.Sprintf("Estado cambiado de %s a %s", from, to)
}
