package service

import (
	"context"
	"encoding/json"

	"praxis-chat-be/internal/dto"
	"praxis-chat-be/internal/pkg/logger"
	"praxis-chat-be/internal/pkg/serverutils"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IFeedbackService accepts answer feedback and hands it to the background
// consumer. Fire-and-forget from the chat turn's perspective: a failing
// insert never touches an in-flight answer stream.
type IFeedbackService interface {
	Submit(ctx context.Context, request *dto.SendFeedbackRequest) (*dto.SendFeedbackResponse, error)
}

type feedbackService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewFeedbackService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IFeedbackService {
	return &feedbackService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

func (s *feedbackService) Submit(ctx context.Context, request *dto.SendFeedbackRequest) (*dto.SendFeedbackResponse, error) {
	if request.MessageId == "" || request.Helpful == nil {
		return nil, serverutils.NewValidationError("Invalid body")
	}

	payload, err := json.Marshal(dto.PublishFeedbackMessage{
		MessageId: request.MessageId,
		Helpful:   *request.Helpful,
		Note:      request.Note,
	})
	if err != nil {
		return nil, err
	}

	if err := s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.logger.Error("feedback_service", "Failed to publish feedback", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	return &dto.SendFeedbackResponse{Ok: true}, nil
}
