package study

import (
	"context"
	"errors"
	"time"

	"github.com/example/lang-portal/pkg/db"
	"gorm.io/gorm"
)

// CreateSession records one study session for a group/activity pair.
// The referential checks run in the same transaction as the insert, so
// either the fully populated row becomes visible or nothing does.
func (s *Store) CreateSession(ctx context.Context, groupID, activityID int) (*Session, error) {
	var out Session
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group db.Group
		if err := tx.Select("id", "name").First(&group, "id = ?", groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Group not found")
			}
			return StorageFault(err)
		}

		var activity db.StudyActivity
		if err := tx.Select("id", "name").First(&activity, "id = ?", activityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Study activity not found")
			}
			return StorageFault(err)
		}

		session := db.StudySession{
			GroupID:         group.ID,
			StudyActivityID: activity.ID,
			CreatedAt:       time.Now().UTC(),
		}
		if err := tx.Create(&session).Error; err != nil {
			return classifyWriteError(err)
		}

		// Re-read the joined projection so the response reflects
		// exactly what was committed.
		summary, err := sessionSummary(tx, int(session.ID))
		if err != nil {
			return StorageFault(err)
		}
		out = *summary
		return nil
	})
	if err != nil {
		return nil, asError(err)
	}
	return &out, nil
}

// CreateReviewItem records one correct/incorrect judgment against an
// existing session. The word must belong to the session's group, not
// merely exist.
func (s *Store) CreateReviewItem(ctx context.Context, sessionID, wordID int, correct bool) (*ReviewItem, error) {
	var out ReviewItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session db.StudySession
		if err := tx.Select("id", "group_id").First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Study session not found")
			}
			return StorageFault(err)
		}

		var word db.Word
		err := tx.
			Select("words.id", "words.french", "words.english").
			Joins("JOIN group_words gw ON gw.word_id = words.id").
			Where("words.id = ? AND gw.group_id = ?", wordID, session.GroupID).
			First(&word).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Word not found or not in group")
			}
			return StorageFault(err)
		}

		item := db.WordReviewItem{
			StudySessionID: session.ID,
			WordID:         word.ID,
			Correct:        correct,
			CreatedAt:      time.Now().UTC(),
		}
		if err := tx.Create(&item).Error; err != nil {
			return classifyWriteError(err)
		}

		out = ReviewItem{
			ID:        item.ID,
			WordID:    word.ID,
			French:    word.French,
			English:   word.English,
			Correct:   item.Correct,
			CreatedAt: item.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, asError(err)
	}
	return &out, nil
}

func classifyWriteError(err error) *Error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return Conflict(err)
	}
	return StorageFault(err)
}
