package study

import (
	"time"

	"gorm.io/gorm"
)

// Store runs the study-session workflows against an injected database
// handle. It holds no state between calls; every operation re-reads
// what it needs.
type Store struct {
	db *gorm.DB
}

func NewStore(gdb *gorm.DB) *Store {
	return &Store{db: gdb}
}

// Session is the API projection of a study session. EndTime always
// equals StartTime; sessions have no recorded end.
type Session struct {
	ID               uint      `json:"id"`
	GroupID          uint      `json:"group_id"`
	GroupName        string    `json:"group_name"`
	ActivityID       uint      `json:"activity_id"`
	ActivityName     string    `json:"activity_name"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	ReviewItemsCount int64     `json:"review_items_count"`
}

// ReviewItem is the API projection of one recorded judgment.
type ReviewItem struct {
	ID        uint      `json:"id"`
	WordID    uint      `json:"word_id"`
	French    string    `json:"french"`
	English   string    `json:"english"`
	Correct   bool      `json:"correct"`
	CreatedAt time.Time `json:"created_at"`
}

// WordStats is a word annotated with review counts. Session-scoped in
// GetSession, all-time in GroupWords.
type WordStats struct {
	ID           uint   `json:"id"`
	French       string `json:"french"`
	English      string `json:"english"`
	CorrectCount int64  `json:"correct_count"`
	WrongCount   int64  `json:"wrong_count"`
}

// SessionPage is one page of session summaries plus page metadata.
type SessionPage struct {
	Items      []Session `json:"items"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
	TotalPages int       `json:"total_pages"`
}

// SessionDetail is a session summary plus one page of its reviewed
// words.
type SessionDetail struct {
	Session    Session     `json:"session"`
	Words      []WordStats `json:"words"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
	TotalPages int         `json:"total_pages"`
}

// sessionRow is the scan target for the joined session summary query.
type sessionRow struct {
	ID               uint
	GroupID          uint
	GroupName        string
	ActivityID       uint
	ActivityName     string
	CreatedAt        time.Time
	ReviewItemsCount int64
}

func (r sessionRow) session() Session {
	return Session{
		ID:               r.ID,
		GroupID:          r.GroupID,
		GroupName:        r.GroupName,
		ActivityID:       r.ActivityID,
		ActivityName:     r.ActivityName,
		StartTime:        r.CreatedAt,
		EndTime:          r.CreatedAt,
		ReviewItemsCount: r.ReviewItemsCount,
	}
}
