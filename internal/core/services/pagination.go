package services

import (
	"time"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
)

// resumeIndex returns where the page after the cursor starts in txns (most recent first).
// When the cursor transaction no longer exists, paging resumes at the first transaction
// older than the cursor timestamp.
func resumeIndex(txns []domain.Transaction, cursorID string, cursorTS time.Time) int {
	for i, txn := range txns {
		if txn.ID == cursorID {
			return i + 1
		}
	}
	for i, txn := range txns {
		if txn.Timestamp.Before(cursorTS) {
			return i
		}
	}
	return len(txns)
}
