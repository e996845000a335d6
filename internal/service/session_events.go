package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/studioflow/tutorly-api/internal/dto"
)

// DefaultSessionEndedSubject is the NATS subject session close events go out on.
const DefaultSessionEndedSubject = "tutorly.sessions.ended"

type sessionEndedEvent struct {
	Session dto.SessionResponse `json:"session"`
	SentAt  time.Time           `json:"sent_at"`
}

type natsSessionEvents struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewNATSSessionEvents constructs a publisher that emits session lifecycle
// events over NATS. A nil connection yields a no-op publisher.
func NewNATSSessionEvents(conn *nats.Conn, subject string, logger zerolog.Logger) SessionEventPublisher {
	if subject == "" {
		subject = DefaultSessionEndedSubject
	}

	return &natsSessionEvents{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "session_events").Logger(),
	}
}

// SessionEnded publishes the close event. Delivery is best effort: a publish
// failure is logged and never surfaced to the request that triggered it.
func (p *natsSessionEvents) SessionEnded(_ context.Context, session dto.SessionResponse) {
	if p.conn == nil {
		return
	}

	payload, err := json.Marshal(sessionEndedEvent{Session: session, SentAt: time.Now().UTC()})
	if err != nil {
		p.logger.Error().Err(err).Uint("session_id", session.ID).Msg("failed to encode session event")
		return
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		p.logger.Warn().Err(err).Uint("session_id", session.ID).Msg("failed to publish session event")
	}
}
