package agent

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Logged wraps an Agent and records every call.
type Logged struct {
	next Agent
	log  *zap.Logger
}

// WithLogging decorates next with structured call logging.
func WithLogging(next Agent, log *zap.Logger) *Logged {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logged{next: next, log: log.Named("agent")}
}

// Call implements Agent.
func (l *Logged) Call(ctx context.Context, instruction, agentID string) (*Response, error) {
	start := time.Now()
	resp, err := l.next.Call(ctx, instruction, agentID)

	fields := []zap.Field{
		zap.String("agent_id", agentID),
		zap.Int("instruction_len", len(instruction)),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		l.log.Warn("agent call failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	if resp == nil {
		l.log.Warn("agent returned no response", fields...)
		return nil, nil
	}

	fields = append(fields,
		zap.Bool("success", resp.Success),
		zap.String("status", resp.Status),
		zap.String("action_type", resp.Result.ActionType()),
	)
	if !resp.Success {
		l.log.Warn("agent reported failure", append(fields, zap.String("error", resp.Error))...)
		return resp, nil
	}
	l.log.Info("agent call", fields...)
	return resp, nil
}
