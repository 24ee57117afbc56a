package interfaces

import (
	"context"
	"homologacion_motos/internal/domain/entities"
)

// IReviewTicketRepository abstracts DynamoDB persistence for ReviewTicket.
// One ticket per case; finalize replays return the stored one.

type IReviewTicketRepository interface {
	Create(ctx context.Context, t entities.ReviewTicket) (entities.ReviewTicket, error)
	GetByCaseID(ctx context.Context, caseID string) (entities.ReviewTicket, error)
}
