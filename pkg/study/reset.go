package study

import (
	"context"

	"gorm.io/gorm"
)

// ResetHistory deletes all review items and then all sessions, child
// before parent, in one transaction. Running it against an already
// empty history is a successful no-op.
func (s *Store) ResetHistory(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM word_review_items").Error; err != nil {
			return StorageFault(err)
		}
		if err := tx.Exec("DELETE FROM study_sessions").Error; err != nil {
			return StorageFault(err)
		}
		return nil
	})
	if err != nil {
		return asError(err)
	}
	return nil
}
