package interfaces

import (
	"context"
	"homologacion_motos/internal/domain/entities"
)

// ICasePaymentRepository abstracts DynamoDB persistence for CasePayment.

type ICasePaymentRepository interface {
	Create(ctx context.Context, p entities.CasePayment) (entities.CasePayment, error)
	GetByID(ctx context.Context, id string) (entities.CasePayment, error)
	ListByCaseID(ctx context.Context, caseID string) ([]entities.CasePayment, error)
}
