package telegram

import (
	"context"
	"time"

	"matheo/internal/log"
)

const (
	pollTimeoutSeconds = 50
	pollRetryDelay     = 3 * time.Second
)

// Poller drives the bot via getUpdates long polling, the
// default transport when no public HTTPS endpoint is available.
type Poller struct {
	client  *Client
	handler *Handler
	logger  *log.Logger
}

func NewPoller(client *Client, handler *Handler, logger *log.Logger) *Poller {
	return &Poller{
		client:  client,
		handler: handler,
		logger:  logger.WithComponent(log.ComponentPoller),
	}
}

// Run polls until ctx is cancelled. Transient API failures are retried
// after a short delay.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.InfoContext(ctx, "Started polling for updates")

	var offset int64
	for {
		updates, err := p.client.GetUpdates(ctx, offset, pollTimeoutSeconds)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.InfoContext(ctx, "Stopped polling", "reason", ctx.Err())
				return nil
			}
			p.logger.WarnContext(ctx, "getUpdates failed, retrying", log.FieldError, err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for _, update := range updates {
			p.handler.HandleUpdate(ctx, update)
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
		}
	}
}
