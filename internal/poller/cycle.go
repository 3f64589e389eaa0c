package poller

import (
	"context"
	"errors"
	"time"

	"homeworkbot/internal/practicum"
	logx "homeworkbot/pkg/logx"
)

// runCycle is one full poll: fetch, validate, describe, notify. Every
// failure is classified and absorbed here; nothing propagates to the
// scheduler.
func (s *Service) runCycle(ctx context.Context) {
	s.st.Lock()
	cursor := s.cursor
	s.st.Unlock()

	started := s.now()

	raw, err := s.src.FetchStatuses(ctx, cursor)
	var upd *practicum.Update
	if err == nil {
		upd, err = practicum.ValidateResponse(raw)
	}

	switch {
	case err == nil:
		s.change(ctx, upd, started)
	case errors.Is(err, practicum.ErrNoStatusChange):
		// Steady state. The cursor stays put so a verdict landing exactly
		// on the boundary is not skipped next time.
		s.log.Debug("no status change", logx.Int64("cursor", cursor))
		s.publish("poll.idle", CycleEvent{Cursor: cursor})
	default:
		s.fault(ctx, cursor, err)
	}
}

func (s *Service) change(ctx context.Context, upd *practicum.Update, started time.Time) {
	text, err := practicum.DescribeSubmission(upd.Latest)
	if err != nil {
		s.st.Lock()
		cursor := s.cursor
		s.st.Unlock()
		s.fault(ctx, cursor, err)
		return
	}

	delivered := s.notifier.Notify(ctx, text)

	// The remote state has moved on whether or not Telegram accepted the
	// message; advancing regardless keeps a broken channel from replaying
	// the same verdict forever. Delivery health shows up in the logs and
	// on the bus.
	s.st.Lock()
	s.cursor = upd.CurrentDate
	s.lastFault = ""
	s.st.Unlock()

	s.log.Info("status change processed",
		logx.Bool("delivered", delivered),
		logx.Int64("cursor", upd.CurrentDate),
		logx.Duration("took", s.now().Sub(started)))
	s.publish("poll.change", CycleEvent{Cursor: upd.CurrentDate, Delivered: delivered})
}

func (s *Service) fault(ctx context.Context, cursor int64, err error) {
	msg := FaultMessage(err)

	s.st.Lock()
	repeat := msg == s.lastFault
	if !repeat {
		s.lastFault = msg
	}
	s.st.Unlock()

	if repeat {
		// Same failure as last notified: the operator already knows.
		s.log.Error("cycle failed (repeat, notification suppressed)", logx.Err(err))
		s.publish("poll.fault", CycleEvent{Cursor: cursor, Fault: msg, Repeat: true})
		return
	}

	delivered := s.notifier.Notify(ctx, msg)
	s.log.Error("cycle failed", logx.Err(err), logx.Bool("delivered", delivered))
	s.publish("poll.fault", CycleEvent{Cursor: cursor, Fault: msg, Delivered: delivered})
}
