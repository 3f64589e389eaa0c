package notifier

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"homeworkbot/internal/eventbus"
	kit "homeworkbot/internal/transport"
	logx "homeworkbot/pkg/logx"
)

// Service delivers texts to the student's chat.
//
// Delivery is synchronous: the poll cycle owns ordering and runs one at a
// time, so there is no queue or worker pool here. What the service adds on
// top of the adapter is throttling, a per-send timeout, and the guarantee
// that a failed delivery surfaces only as a false return.
type Service struct {
	mu      sync.Mutex
	cfg     Config
	limiter *rate.Limiter

	adapter kit.Adapter
	target  kit.ChatTarget
	log     logx.Logger
	bus     eventbus.Bus
}

func New(cfg Config, adapter kit.Adapter, target kit.ChatTarget, log logx.Logger, bus eventbus.Bus) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	s := &Service{
		adapter: adapter,
		target:  target,
		log:     log,
		bus:     bus,
	}
	s.applyLocked(cfg)
	return s
}

func (s *Service) Apply(cfg Config) {
	s.mu.Lock()
	s.applyLocked(cfg)
	s.mu.Unlock()
}

func (s *Service) applyLocked(cfg Config) {
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 1
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}
	s.cfg = cfg
	s.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec)
}

// Notify sends text to the configured chat and reports whether it was
// delivered. Every failure is absorbed here: the poll loop must keep running
// whether or not Telegram accepted the message.
func (s *Service) Notify(ctx context.Context, text string) (delivered bool) {
	if ctx == nil {
		ctx = context.Background()
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("notification panicked", logx.Any("panic", r))
			delivered = false
		}
	}()

	s.mu.Lock()
	lim := s.limiter
	timeout := s.cfg.SendTimeout
	s.mu.Unlock()

	if s.adapter == nil || text == "" {
		return false
	}

	if err := lim.Wait(ctx); err != nil {
		s.log.Debug("notification canceled while throttled", logx.Err(err))
		return false
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	_, err := s.adapter.SendText(callCtx, s.target, text, &kit.SendOptions{DisablePreview: true})
	cancel()

	if err != nil {
		s.log.Error("notification failed", logx.Err(err), logx.Int64("chat_id", s.target.ChatID))
		s.publish("notify.failed", len(text), err)
		return false
	}

	s.log.Debug("notification sent", logx.Int64("chat_id", s.target.ChatID), logx.Int("chars", len(text)))
	s.publish("notify.sent", len(text), nil)
	return true
}

func (s *Service) publish(typ string, chars int, err error) {
	if s.bus == nil {
		return
	}
	now := time.Now()
	ev := DeliveryEvent{ChatID: s.target.ChatID, Chars: chars, At: now}
	if err != nil {
		ev.Error = err.Error()
	}
	s.bus.Publish(eventbus.Event{Type: typ, Time: now, Data: ev})
}
