package domain

import "time"

// SyncType names the kind of synchronization run.
type SyncType string

const (
	SyncTypeGLAccounts   SyncType = "gl_accounts"
	SyncTypeTransactions SyncType = "transactions"
)

// SyncStatus is the state of a sync run.
type SyncStatus string

const (
	SyncStatusRunning SyncStatus = "running"
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusPartial SyncStatus = "partial"
	SyncStatusFailed  SyncStatus = "failed"
)

// SyncLog is the persisted record of one GL-account or transaction synchronization.
type SyncLog struct {
	SyncLogID      string     `json:"syncLogID"`
	OrganizationID string     `json:"organizationID"`
	SyncType       SyncType   `json:"syncType"`
	Status         SyncStatus `json:"status"`
	Processed      int        `json:"processed"`
	Created        int        `json:"created"`
	Updated        int        `json:"updated"`
	Failed         int        `json:"failed"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
	PeriodStart    *time.Time `json:"periodStart,omitempty"`
	PeriodEnd      *time.Time `json:"periodEnd,omitempty"`
	StartedAt      time.Time  `json:"startedAt"`
	FinishedAt     *time.Time `json:"finishedAt,omitempty"`
	StartedBy      string     `json:"startedBy"`
}

// Finish sets the final status from the counters.
func (l *SyncLog) Finish(now time.Time, runErr error) {
	l.FinishedAt = &now
	switch {
	case runErr != nil:
		l.Status = SyncStatusFailed
		l.ErrorMessage = runErr.Error()
	case l.Failed > 0:
		l.Status = SyncStatusPartial
	default:
		l.Status = SyncStatusSuccess
	}
}
