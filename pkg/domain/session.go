package domain

import "time"

// Session identifies one logical run of the application.
//
// Config is owned by whoever created the session; it is stored by reference and
// never interpreted here. RunStatus and ConversionState are created fresh with the
// session and mutated in place by the work that runs under it.
type Session struct {
	ID              string
	Config          any
	RunStatus       *RunStatus
	ConversionState *ConversionState
	CreatedAt       time.Time
}

// NewSession builds a session with fresh outcome aggregates.
func NewSession(id string, config any) *Session {
	return &Session{
		ID:              NormalizeID(id),
		Config:          config,
		RunStatus:       NewRunStatus(),
		ConversionState: NewConversionState(),
		CreatedAt:       time.Now(),
	}
}
