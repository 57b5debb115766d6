package dto

// SendFeedbackRequest mirrors the public feedback body. Helpful is a pointer
// so a missing field is distinguishable from an explicit false.
type SendFeedbackRequest struct {
	MessageId string  `json:"message_id"`
	Helpful   *bool   `json:"helpful"`
	Note      *string `json:"note,omitempty"`
}

type SendFeedbackResponse struct {
	Ok bool `json:"ok"`
}

// PublishFeedbackMessage is the payload carried on the in-process feedback
// topic between the controller and the persisting consumer.
type PublishFeedbackMessage struct {
	MessageId string  `json:"message_id"`
	Helpful   bool    `json:"helpful"`
	Note      *string `json:"note,omitempty"`
}
