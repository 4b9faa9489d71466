package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TxType string

const (
	TxIncome  TxType = "income"  // ingreso
	TxExpense TxType = "expense" // gasto
)

type TxStatus string

const (
	StatusPending TxStatus = "pending" // pendiente de cobro/pago
	StatusPaid    TxStatus = "paid"    // liquidado
)

type Category string

// Lista cerrada de categorías de la constructora
const (
	CategorySubcontractors Category = "Subcontratistas"
	CategoryMaterials      Category = "Materiales"
	CategoryEquipment      Category = "Alquiler de Equipos"
	CategoryTransport      Category = "Transporte/Combustible"
	CategoryAdministrative Category = "Administrativos"
	CategorySalaries       Category = "Salarios"
	CategoryOther          Category = "Otros"
)

var AllCategories = []Category{
	CategorySubcontractors,
	CategoryMaterials,
	CategoryEquipment,
	CategoryTransport,
	CategoryAdministrative,
	CategorySalaries,
	CategoryOther,
}

func IsValidCategory(c Category) bool {
	for _, v := range AllCategories {
		if v == c {
			return true
		}
	}
	return false
}

func IsValidTxType(t TxType) bool {
	return t == TxIncome || t == TxExpense
}

func IsValidTxStatus(s TxStatus) bool {
	return s == StatusPending || s == StatusPaid
}

// Transaction - movimiento de ingreso o gasto de la constructora.
// Date se guarda como "YYYY-MM-DD" para que el orden lexicográfico
// coincida con el orden cronológico (los handlers validan el formato).
type Transaction struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"`
	Date        string            `gorm:"size:10;index;not null" json:"date"`
	Description string            `gorm:"size:255;not null" json:"description"`
	Amount      float64           `gorm:"not null" json:"amount"` // siempre >= 0, el signo lo da Type
	Type        TxType            `gorm:"size:10;index;not null" json:"type"`
	Category    Category          `gorm:"size:50;index;not null" json:"category"`
	Project     string            `gorm:"size:100;index;not null" json:"project"`
	Status      TxStatus          `gorm:"size:10;index;not null" json:"status"`
	Notes       []TransactionNote `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type NoteOrigin string

const (
	NoteOriginSystem NoteOrigin = "system" // generada por el sistema (alta, edición, cambio de estado)
	NoteOriginUser   NoteOrigin = "user"   // anotación manual
)

// TransactionNote - bitácora append-only de la transacción.
// Nunca se reordena ni se borra una entrada individual.
type TransactionNote struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TransactionID string     `gorm:"size:36;index;not null" json:"transaction_id"`
	Text          string     `gorm:"size:500;not null" json:"text"`
	UserEmail     string     `gorm:"size:100;not null" json:"user_email"`
	Origin        NoteOrigin `gorm:"size:10;not null" json:"origin"`
	CreatedAt     time.Time  `json:"created_at"`
}
