package dashboard

import (
	"context"
	"log/slog"
	"time"
)

// Poller refreshes the controller in place at a fixed interval. Refreshes
// never tear down the snapshot; a failed poll keeps the previous view.
type Poller struct {
	controller *Controller
	interval   time.Duration
	log        *slog.Logger
}

func NewPoller(controller *Controller, interval time.Duration, log *slog.Logger) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		controller: controller,
		interval:   interval,
		log:        log,
	}
}

// Run loads immediately, then refreshes every interval until ctx is
// cancelled. Errors are logged and the loop keeps going.
func (p *Poller) Run(ctx context.Context) {
	if err := p.controller.LoadAll(ctx); err != nil {
		p.log.Error("initial dashboard load failed", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info("dashboard poller stopped")
			return
		case <-ticker.C:
			if err := p.controller.LoadAll(ctx); err != nil {
				p.log.Error("dashboard poll failed", slog.String("error", err.Error()))
			}
		}
	}
}
