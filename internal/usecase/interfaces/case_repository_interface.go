package interfaces

import (
	"context"
	"homologacion_motos/internal/domain/entities"
)

// ICaseRepository abstracts DynamoDB persistence for Case.
//
// The workflow needs to:
//   - create the case record when start_case resolves its first elements
//   - load the current case of a conversation before every action
//   - save the whole mutated case after a handler runs (the case is small and
//     actions are serialized per conversation, so full-item writes are fine)

type ICaseRepository interface {
	Create(ctx context.Context, c entities.Case) (entities.Case, error)
	Save(ctx context.Context, c entities.Case) (entities.Case, error)
	GetByID(ctx context.Context, id string) (entities.Case, error)
	GetCurrentByConversationID(ctx context.Context, conversationID string) (entities.Case, error)
}
