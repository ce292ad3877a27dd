package mailer

import (
	"time"

	"github.com/sirupsen/logrus"
)

// NoopGateway logs outbound mail instead of sending it. Used in development
// and wherever the mail API is not configured.
type NoopGateway struct {
	logger *logrus.Logger
}

// NewNoopGateway creates a new logging-only gateway
func NewNoopGateway(logger *logrus.Logger) *NoopGateway {
	return &NoopGateway{logger: logger}
}

// Send logs the message and reports success
func (g *NoopGateway) Send(msg Message) (int64, error) {
	g.logger.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("Mail suppressed (noop gateway)")
	return time.Now().UnixMicro(), nil
}

// GetName returns the name of this mail gateway
func (g *NoopGateway) GetName() string {
	return "Noop Mail Gateway"
}
