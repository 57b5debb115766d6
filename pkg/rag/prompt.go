package rag

import (
	"strings"

	"praxis-chat-be/internal/constant"
	"praxis-chat-be/pkg/llm"
)

// BuildMessages composes the chat history for one turn: the fixed system
// instruction plus a user turn carrying the question and the assembled
// context.
func BuildMessages(question, contextText string) []llm.Message {
	var user strings.Builder
	user.WriteString("Question: ")
	user.WriteString(question)
	user.WriteString("\n\nContext:\n")
	user.WriteString(contextText)

	return []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.AnswerSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: user.String()},
	}
}
