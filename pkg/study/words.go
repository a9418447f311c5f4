package study

import (
	"context"
	"errors"

	"github.com/example/lang-portal/pkg/db"
	"gorm.io/gorm"
)

// GroupWords returns every word in a group with its all-time review
// counts. The counts are per word, not per group: a word shared by
// several groups carries the reviews earned through any of their
// sessions. Words that were never reviewed appear with zero counts.
func (s *Store) GroupWords(ctx context.Context, groupID int) ([]WordStats, error) {
	gdb := s.db.WithContext(ctx)

	var group db.Group
	if err := gdb.Select("id").First(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Group not found")
		}
		return nil, StorageFault(err)
	}

	words := []WordStats{}
	err := gdb.Raw(`
SELECT
  w.id,
  w.french,
  w.english,
  COALESCE(SUM(CASE WHEN wri.correct THEN 1 ELSE 0 END), 0) AS correct_count,
  COALESCE(SUM(CASE WHEN NOT wri.correct THEN 1 ELSE 0 END), 0) AS wrong_count
FROM words w
JOIN group_words gw ON gw.word_id = w.id
LEFT JOIN word_review_items wri ON wri.word_id = w.id
WHERE gw.group_id = ?
GROUP BY w.id, w.french, w.english
ORDER BY w.french
`, groupID).Scan(&words).Error
	if err != nil {
		return nil, StorageFault(err)
	}
	return words, nil
}
