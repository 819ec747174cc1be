package model

import (
	"time"

	"github.com/google/uuid"
)

// ScanRun records summary stats for one inbox scan.
type ScanRun struct {
	StartedAt       time.Time
	LookbackMonths  int
	EmailsScanned   int
	SendersAnalyzed int
	CandidatesFound int
	ID              uuid.UUID
}
