// Package domain defines the core domain models for the fulfillment webhook backend.
package domain

// Operation identifies an LLM-backed operation for logging and metrics.
type Operation string

const (
	OperationGetLocation           Operation = "get_location"
	OperationSummarizeConversation Operation = "summarize_conversation"
	OperationSummarizeBulk         Operation = "summarize_conversations"
	OperationTagCallback           Operation = "tag_callback"
)

// Prompt ids stored as fields of the prompt configuration document.
const (
	PromptGetLocation           = "get-location"
	PromptSummarizeConversation = "summarize-chat-conversation"
)

// Document store layout.
const (
	ChatHistoryCollection = "chat-history-collection"
	MessagesCollection    = "messages"
	PromptsCollection     = "llm-prompts"
	PromptsDocument       = "fulfillment-webhook"
)
