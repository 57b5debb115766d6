package contract

import (
	"context"

	"praxis-chat-be/internal/model"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
}
