package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook: vuelca la proyección del documento a un libro de Excel.
// Cada página del documento se separa con su pie correspondiente para que
// la impresión conserve la numeración.
func WriteWorkbook(doc Document) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Reporte"

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("no se pudo nombrar la hoja: %w", err)
	}

	row := 1
	set := func(col string, v interface{}) {
		_ = f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
	}

	// encabezado
	set("A", doc.Title)
	row++
	set("A", "Generado")
	set("B", doc.GeneratedAt)
	row++
	set("A", "Usuario")
	set("B", doc.GeneratedBy)
	row += 2

	// resumen de métricas
	for _, cell := range doc.Summary {
		set("A", cell.Label)
		set("B", cell.Value)
		row++
	}
	row++

	// bloque de alertas, solo si hay alguna activa
	if len(doc.Alerts) > 0 {
		set("A", "Alertas")
		row++
		for _, a := range doc.Alerts {
			set("A", a)
			row++
		}
		row++
	}

	// listado de transacciones
	headers := []struct {
		col, label string
	}{
		{"A", "Fecha"}, {"B", "Descripción"}, {"C", "Obra"},
		{"D", "Categoría"}, {"E", "Tipo"}, {"F", "Estado"}, {"G", "Monto"},
	}
	for _, h := range headers {
		set(h.col, h.label)
	}
	row++

	for _, page := range doc.Pages {
		for _, t := range page.Rows {
			set("A", t.Date)
			set("B", t.Description)
			set("C", t.Project)
			set("D", string(t.Category))
			set("E", string(t.Type))
			set("F", string(t.Status))
			set("G", t.Amount)
			row++
		}
		set("A", page.Footer)
		row += 2
	}

	return f, nil
}
