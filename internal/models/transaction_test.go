package models

import "testing"

func TestResolveRole(t *testing.T) {
	admin := "gerencia@constructora.com"

	if got := ResolveRole("gerencia@constructora.com", admin); got != RoleAdmin {
		t.Errorf("email del administrador = %s, want admin", got)
	}
	if got := ResolveRole("obra@constructora.com", admin); got != RoleEditor {
		t.Errorf("cualquier otro email = %s, want editor", got)
	}
}

func TestClosedSets(t *testing.T) {
	if !IsValidCategory(CategoryMaterials) || IsValidCategory("Inventada") {
		t.Error("validación de categorías incorrecta")
	}
	if !IsValidTxType(TxIncome) || IsValidTxType("transfer") {
		t.Error("validación de tipo incorrecta")
	}
	if !IsValidTxStatus(StatusPending) || IsValidTxStatus("overdue") {
		t.Error("validación de estado incorrecta")
	}
}
