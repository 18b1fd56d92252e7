package models

import "time"

// Channel identifies how the customer is talking to us.
type Channel string

const (
	ChannelWeb   Channel = "web"
	ChannelSMS   Channel = "sms"
	ChannelVoice Channel = "voice"
)

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	switch c {
	case ChannelWeb, ChannelSMS, ChannelVoice:
		return true
	}
	return false
}

// SessionState tracks where a session is in the per-turn loop.
type SessionState string

const (
	SessionAwaitingInput SessionState = "AWAITING_INPUT"
	SessionModelThinking SessionState = "MODEL_THINKING"
	SessionToolRequested SessionState = "TOOL_REQUESTED"
	SessionToolExecuting SessionState = "TOOL_EXECUTING"
	SessionResultInjected SessionState = "RESULT_INJECTED"
	SessionReplyReady    SessionState = "REPLY_READY"
)

// MessageRole mirrors the completion provider's turn roles.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

// TokenUsage is whatever accounting the completion provider surfaced for a call.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens,omitempty"`
	CompletionTokens int `json:"completionTokens,omitempty"`
	TotalTokens      int `json:"totalTokens,omitempty"`
}

// ChatMessage is one entry in a session's ordered message log.
type ChatMessage struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	ToolName  string      `json:"toolName,omitempty"` // set on tool-result entries
	Channel   Channel     `json:"channel"`
	Timestamp time.Time   `json:"timestamp"`
	Usage     *TokenUsage `json:"usage,omitempty"`
}

// ConversationSession is the per-customer conversation context. It is created on
// the first inbound message for a session id, mutated only by the orchestrator,
// and torn down by the session store's TTL.
type ConversationSession struct {
	SessionID  string        `json:"sessionId"`
	Channel    Channel       `json:"channel"`
	CustomerID string        `json:"customerId,omitempty"`
	MessageLog []ChatMessage `json:"messageLog"`
	State      SessionState  `json:"state"`
	CreatedAt  time.Time     `json:"createdAt"`
}
