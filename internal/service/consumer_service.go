package service

import (
	"context"
	"encoding/json"

	"praxis-chat-be/internal/dto"
	"praxis-chat-be/internal/model"
	"praxis-chat-be/internal/pkg/logger"
	"praxis-chat-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the feedback topic and persists entries. It runs in
// the background for the process lifetime.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	feedbackRepo contract.FeedbackRepository
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	feedbackRepo contract.FeedbackRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		feedbackRepo: feedbackRepo,
		logger:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishFeedbackMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer_service", "Failed to unmarshal feedback message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	feedback := &model.Feedback{
		MessageId: payload.MessageId,
		Helpful:   payload.Helpful,
		Note:      payload.Note,
	}

	if err := cs.feedbackRepo.Create(ctx, feedback); err != nil {
		cs.logger.Error("consumer_service", "Failed to persist feedback", map[string]interface{}{
			"message_id": payload.MessageId,
			"error":      err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	cs.logger.Info("consumer_service", "Feedback persisted", map[string]interface{}{"message_id": payload.MessageId})
	msg.Ack()
}
