package response

import (
	"testing"

	"homologacion_motos/internal/usecase"
)

func TestFromActionResult(t *testing.T) {
	r := usecase.ActionResult{
		Success:     false,
		AlreadyDone: false,
		ErrorCode:   usecase.CodeFieldInvalid,
		Message:     "valor no válido",
		Guidance:    "db_nivel debe ser un número",
		Data:        map[string]any{"field": "db_nivel"},
	}

	res := FromActionResult(r)
	if res.Success || res.AlreadyDone {
		t.Fatalf("unexpected flags: %+v", res)
	}
	if res.ErrorCode != "FIELD_INVALID" || res.Message != "valor no válido" || res.Guidance != "db_nivel debe ser un número" {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if res.Data["field"] != "db_nivel" {
		t.Fatalf("unexpected data: %+v", res.Data)
	}
}
