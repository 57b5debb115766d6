package contract

import (
	"context"

	"praxis-chat-be/internal/model"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
}
