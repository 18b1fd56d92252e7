package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"fieldassist/models"
	"fieldassist/services/envelope"
	"fieldassist/services/intelligence"
	"fieldassist/services/tasks"
	"fieldassist/services/tools"
	"fieldassist/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config bounds the per-turn conversation loop.
type Config struct {
	MaxToolRounds int           // tool-call rounds allowed per user turn
	TurnBudget    time.Duration // wall-clock budget for one full turn
	ArchiveAfter  time.Duration // idle time before the transcript is exported
	SessionTTL    time.Duration // idle time before a session's lock is dropped
	CompanyPhone  string
}

// Orchestrator runs the per-session message/tool-call loop against the
// completion provider. It is the only code that mutates a session.
type Orchestrator struct {
	Provider  intelligence.CompletionProvider
	Executor  *tools.Executor
	Formatter *envelope.Formatter
	Sessions  SessionStore
	Adapter   *ChannelAdapter
	Scheduler *tasks.Scheduler
	Cfg       Config

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is an entry in the per-session lock table. waiters counts the
// turns holding or queued on mu; an entry may only be evicted at zero.
type sessionLock struct {
	mu       sync.Mutex
	waiters  int
	lastUsed time.Time
}

func New(provider intelligence.CompletionProvider, executor *tools.Executor, formatter *envelope.Formatter, sessions SessionStore, adapter *ChannelAdapter, cfg Config) *Orchestrator {
	if cfg.MaxToolRounds <= 0 {
		cfg.MaxToolRounds = 2
	}
	if cfg.TurnBudget <= 0 {
		cfg.TurnBudget = 25 * time.Second
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	return &Orchestrator{
		Provider:  provider,
		Executor:  executor,
		Formatter: formatter,
		Sessions:  sessions,
		Adapter:   adapter,
		Cfg:       cfg,
		locks:     make(map[string]*sessionLock),
	}
}

// acquireSession serializes turns for one session id and returns the release
// func. Different sessions proceed concurrently; message N's loop finishes
// before message N+1 starts. Entries idle past SessionTTL are dropped on each
// acquire so the table tracks live sessions rather than all sessions ever seen.
func (o *Orchestrator) acquireSession(sessionID string) func() {
	o.mu.Lock()
	now := time.Now()
	for id, l := range o.locks {
		if l.waiters == 0 && now.Sub(l.lastUsed) > o.Cfg.SessionTTL {
			delete(o.locks, id)
		}
	}
	lock, ok := o.locks[sessionID]
	if !ok {
		lock = &sessionLock{}
		o.locks[sessionID] = lock
	}
	lock.waiters++
	o.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		o.mu.Lock()
		lock.waiters--
		lock.lastUsed = time.Now()
		o.mu.Unlock()
	}
}

// HandleMessage runs one full user turn and returns the channel-rendered
// outbound message.
func (o *Orchestrator) HandleMessage(ctx context.Context, sessionID string, channel models.Channel, text string) (*OutboundMessage, error) {
	logger := utils.GetLogger()

	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	release := o.acquireSession(sessionID)
	defer release()

	session, err := o.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		session = &models.ConversationSession{
			SessionID: sessionID,
			Channel:   channel,
			State:     models.SessionAwaitingInput,
			CreatedAt: time.Now(),
		}
	}

	// Work on an in-memory copy; the store is written exactly once per turn,
	// so a timeout never leaves a half-mutated session behind.
	session.MessageLog = append(session.MessageLog, models.ChatMessage{
		Role:      models.RoleUser,
		Content:   text,
		Channel:   channel,
		Timestamp: time.Now(),
	})

	turnCtx, cancel := context.WithTimeout(ctx, o.Cfg.TurnBudget)
	defer cancel()

	narrative, pending, finalUsage, loopErr := o.runLoop(turnCtx, session, channel)
	if loopErr != nil {
		logger.Warn("turn degraded",
			zap.String("sessionId", sessionID), zap.Error(loopErr))
		if narrative == "" {
			narrative = fmt.Sprintf("We're having trouble on our end - please call us at %s and we'll take care of you.", o.Cfg.CompanyPhone)
		}
	}

	session.MessageLog = append(session.MessageLog, models.ChatMessage{
		Role:      models.RoleAssistant,
		Content:   narrative,
		Channel:   channel,
		Timestamp: time.Now(),
		Usage:     finalUsage,
	})
	session.State = models.SessionAwaitingInput
	session.Channel = channel

	if err := o.Sessions.Set(ctx, session); err != nil {
		logger.Error("failed to persist session",
			zap.String("sessionId", sessionID), zap.Error(err))
	}

	// Re-queue the transcript export every turn; the archive upserts, so the
	// enqueue after the final turn wins with the complete log.
	if o.Scheduler != nil && o.Cfg.ArchiveAfter > 0 {
		if err := o.Scheduler.ScheduleArchive(sessionID, o.Cfg.ArchiveAfter); err != nil {
			logger.Warn("transcript archive scheduling failed",
				zap.String("sessionId", sessionID), zap.Error(err))
		}
	}

	out := o.Adapter.Render(channel, narrative, pending)
	return &out, nil
}

// runLoop drives MODEL_THINKING -> [TOOL_REQUESTED -> TOOL_EXECUTING ->
// RESULT_INJECTED -> MODEL_THINKING]* -> REPLY_READY, bounded by
// Cfg.MaxToolRounds. It returns the final narrative, the pending envelope for
// the channel adapter, the final turn's token accounting, and any degradation
// error. Mid-loop rounds account their usage on the injected tool messages;
// the closing turn's usage goes on the outbound assistant message.
func (o *Orchestrator) runLoop(ctx context.Context, session *models.ConversationSession, channel models.Channel) (string, *models.ResponseEnvelope, *models.TokenUsage, error) {
	var lastNarrative string
	var pending *models.ResponseEnvelope

	schemas := tools.Schemas()
	for round := 0; ; round++ {
		session.State = models.SessionModelThinking
		turn, err := o.Provider.Complete(ctx, session.MessageLog, schemas)
		if err != nil {
			if ctx.Err() != nil {
				err = &utils.UpstreamTimeout{Upstream: "completion", Err: err}
			}
			return lastNarrative, pending, nil, err
		}
		if turn.Narrative != "" {
			lastNarrative = turn.Narrative
		}

		if len(turn.ToolCalls) == 0 {
			session.State = models.SessionReplyReady
			if lastNarrative == "" {
				lastNarrative = fmt.Sprintf("I'm not sure I caught that - could you rephrase, or call us at %s?", o.Cfg.CompanyPhone)
			}
			return lastNarrative, pending, &turn.Usage, nil
		}

		session.State = models.SessionToolRequested
		if round >= o.Cfg.MaxToolRounds {
			// Runaway expansion: answer with what we have plus an escalation.
			fallback := fmt.Sprintf("please give us a call at %s and we'll sort it out directly.", o.Cfg.CompanyPhone)
			if lastNarrative == "" {
				lastNarrative = "I wasn't able to finish that - " + fallback
			} else {
				lastNarrative = lastNarrative + " If anything is still unclear, " + fallback
			}
			return lastNarrative, pending, &turn.Usage, nil
		}

		session.State = models.SessionToolExecuting
		envelopes, err := o.executeRound(ctx, session.SessionID, channel, turn.ToolCalls)
		if err != nil {
			return lastNarrative, pending, nil, err
		}

		session.State = models.SessionResultInjected
		usage := &turn.Usage
		for i, env := range envelopes {
			pending = &envelopes[i]
			session.MessageLog = append(session.MessageLog, models.ChatMessage{
				Role:      models.RoleTool,
				ToolName:  turn.ToolCalls[i].Name,
				Content:   modelVisiblePayload(env),
				Channel:   channel,
				Timestamp: time.Now(),
				Usage:     usage,
			})
			usage = nil // account the round's usage once
		}
	}
}

// executeRound runs one round of tool calls. Execution may be concurrent, but
// the returned envelopes keep the model's original request order.
func (o *Orchestrator) executeRound(ctx context.Context, sessionID string, channel models.Channel, calls []models.ToolCall) ([]models.ResponseEnvelope, error) {
	envelopes := make([]models.ResponseEnvelope, len(calls))

	g, gctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		g.Go(func() error {
			result, err := o.Executor.Execute(gctx, sessionID, channel, call)
			if err != nil {
				envelopes[i] = o.Formatter.FormatError(call, err)
				return nil
			}
			envelopes[i] = o.Formatter.Format(call, result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, &utils.UpstreamTimeout{Upstream: "tool execution", Err: ctx.Err()}
	}
	return envelopes, nil
}

// modelVisiblePayload serializes what the model may see of an envelope:
// structured content and narrative only, never private metadata.
func modelVisiblePayload(env models.ResponseEnvelope) string {
	payload := map[string]any{
		"success":   env.Success,
		"narrative": env.Narrative,
	}
	for k, v := range env.StructuredContent {
		payload[k] = v
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf(`{"success":%t}`, env.Success)
	}
	return string(b)
}
