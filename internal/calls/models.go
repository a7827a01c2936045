// Package calls holds the call-record domain model.
package calls

import "time"

// Call is one placed call on a phone line.
//
// Duration is in whole seconds and must be non-negative; the billing core
// rounds it up to full minutes. Billing references a call by CallID in audit
// metadata rather than mutating money state here.
type Call struct {
	CallID string `json:"call_id"`
	LineID string `json:"line_id,omitempty"`

	From string `json:"from"`
	To   string `json:"to"`

	// Duration is the call duration in seconds.
	Duration int `json:"duration"`

	StartedAt time.Time `json:"started_at,omitempty"`
}

// DurationSeconds satisfies the billing core's call-record contract.
func (c Call) DurationSeconds() int { return c.Duration }
