package controller

import (
	"errors"

	"grimm.is/langportal/internal/api"
	"grimm.is/langportal/internal/models"
	"grimm.is/langportal/internal/notify"
)

// Settings notifications
const (
	MsgHistoryReset  = "Study history has been reset successfully"
	MsgHistoryFailed = "Failed to reset study history"
	MsgFullReset     = "System has been fully reset"
	MsgFullFailed    = "Failed to perform full reset"
)

// ErrBusy is returned when an operation is already in flight.
var ErrBusy = errors.New("operation already in progress")

// Settings runs the two reset operations. Each has its own busy flag.
type Settings struct {
	History *Loader[models.ResetResult]
	Full    *Loader[models.ResetResult]

	p api.Provider
}

// NewSettings creates the settings controller. Outcomes are reported to n.
func NewSettings(p api.Provider, n notify.Notifier, life *Lifetime) *Settings {
	if n == nil {
		n = notify.Discard{}
	}
	s := &Settings{
		History: NewLoader[models.ResetResult](life),
		Full:    NewLoader[models.ResetResult](life),
		p:       p,
	}
	s.History.OnApply = report(n, MsgHistoryReset, MsgHistoryFailed)
	s.Full.OnApply = report(n, MsgFullReset, MsgFullFailed)
	return s
}

func report(n notify.Notifier, ok, failed string) func(models.ResetResult, error) {
	return func(_ models.ResetResult, err error) {
		if err != nil {
			n.Notify(notify.LevelError, failed)
			return
		}
		n.Notify(notify.LevelSuccess, ok)
	}
}

// HistoryBusy reports whether a history reset is in flight.
func (s *Settings) HistoryBusy() bool { return s.History.Loading }

// FullBusy reports whether a full reset is in flight.
func (s *Settings) FullBusy() bool { return s.Full.Loading }

// BeginResetHistory starts a history reset. It returns ErrBusy while one is
// already running.
func (s *Settings) BeginResetHistory() (Fetch, error) {
	if s.HistoryBusy() {
		return nil, ErrBusy
	}
	return Erase(s.History.Start(s.p.ResetHistory)), nil
}

// BeginResetFull starts a full reset. It returns ErrBusy while one is
// already running.
func (s *Settings) BeginResetFull() (Fetch, error) {
	if s.FullBusy() {
		return nil, ErrBusy
	}
	return Erase(s.Full.Start(s.p.ResetFull)), nil
}

// ResetHistory resets study history synchronously.
func (s *Settings) ResetHistory() error {
	f, err := s.BeginResetHistory()
	if err != nil {
		return err
	}
	return RunAll(f)
}

// ResetFull resets the whole system synchronously.
func (s *Settings) ResetFull() error {
	f, err := s.BeginResetFull()
	if err != nil {
		return err
	}
	return RunAll(f)
}
