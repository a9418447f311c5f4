package study

import (
	"context"
	"errors"
	"math"

	"github.com/example/lang-portal/pkg/db"
	"gorm.io/gorm"
)

const (
	DefaultPerPage = 10
	// MaxPerPage bounds a single page so one request cannot pull the
	// whole history.
	MaxPerPage = 100
)

const sessionSummarySelect = `
SELECT
  ss.id,
  ss.group_id,
  g.name AS group_name,
  sa.id AS activity_id,
  sa.name AS activity_name,
  ss.created_at,
  COUNT(wri.id) AS review_items_count
FROM study_sessions ss
JOIN groups g ON g.id = ss.group_id
JOIN study_activities sa ON sa.id = ss.study_activity_id
LEFT JOIN word_review_items wri ON wri.study_session_id = ss.id
`

// ListSessions returns one page of sessions, newest first, each
// annotated with its review-item count.
func (s *Store) ListSessions(ctx context.Context, page, perPage int) (*SessionPage, error) {
	page, perPage = normalizePage(page, perPage)
	gdb := s.db.WithContext(ctx)

	var total int64
	if err := gdb.Model(&db.StudySession{}).Count(&total).Error; err != nil {
		return nil, StorageFault(err)
	}

	var rows []sessionRow
	err := gdb.Raw(sessionSummarySelect+`
GROUP BY ss.id, ss.group_id, g.name, sa.id, sa.name, ss.created_at
ORDER BY ss.created_at DESC, ss.id DESC
LIMIT ? OFFSET ?
`, perPage, (page-1)*perPage).Scan(&rows).Error
	if err != nil {
		return nil, StorageFault(err)
	}

	items := make([]Session, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.session())
	}
	return &SessionPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
	}, nil
}

// GetSession returns a session summary plus one page of the words
// reviewed in it, with counts scoped to this session only.
func (s *Store) GetSession(ctx context.Context, id, page, perPage int) (*SessionDetail, error) {
	page, perPage = normalizePage(page, perPage)
	gdb := s.db.WithContext(ctx)

	summary, err := sessionSummary(gdb, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Study session not found")
		}
		return nil, StorageFault(err)
	}

	words := []WordStats{}
	err = gdb.Raw(`
SELECT
  w.id,
  w.french,
  w.english,
  COALESCE(SUM(CASE WHEN wri.correct THEN 1 ELSE 0 END), 0) AS correct_count,
  COALESCE(SUM(CASE WHEN NOT wri.correct THEN 1 ELSE 0 END), 0) AS wrong_count
FROM words w
JOIN word_review_items wri ON wri.word_id = w.id
WHERE wri.study_session_id = ?
GROUP BY w.id, w.french, w.english
ORDER BY w.french
LIMIT ? OFFSET ?
`, id, perPage, (page-1)*perPage).Scan(&words).Error
	if err != nil {
		return nil, StorageFault(err)
	}

	var total int64
	err = gdb.Raw(`
SELECT COUNT(DISTINCT wri.word_id)
FROM word_review_items wri
WHERE wri.study_session_id = ?
`, id).Scan(&total).Error
	if err != nil {
		return nil, StorageFault(err)
	}

	return &SessionDetail{
		Session:    *summary,
		Words:      words,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
	}, nil
}

// sessionSummary fetches one session's joined projection, or
// gorm.ErrRecordNotFound.
func sessionSummary(gdb *gorm.DB, id int) (*Session, error) {
	var row sessionRow
	res := gdb.Raw(sessionSummarySelect+`
WHERE ss.id = ?
GROUP BY ss.id, ss.group_id, g.name, sa.id, sa.name, ss.created_at
`, id).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	session := row.session()
	return &session, nil
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

func totalPages(total int64, perPage int) int {
	return int(math.Ceil(float64(total) / float64(perPage)))
}
