package db

import (
	"time"

	"gorm.io/datatypes"
)

// Group is a named collection of vocabulary words. Membership lives in
// the group_words join table.
type Group struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"not null"`
	Words []Word `gorm:"many2many:group_words"`
}

// Word carries the vocabulary pair plus optional structured Parts
// (conjugations, gender markers and the like) stored as JSON.
type Word struct {
	ID      uint   `gorm:"primaryKey"`
	French  string `gorm:"not null;index"`
	English string `gorm:"not null"`
	Parts   datatypes.JSON
	Groups  []Group `gorm:"many2many:group_words"`
}

// StudyActivity is a named exercise type a session is an instance of.
type StudyActivity struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

// StudySession is one recorded practice run of a group's words via an
// activity. Rows are immutable after insert; there is no end time, the
// API synthesizes one equal to CreatedAt.
type StudySession struct {
	ID              uint      `gorm:"primaryKey"`
	GroupID         uint      `gorm:"not null;index"`
	StudyActivityID uint      `gorm:"not null;index"`
	CreatedAt       time.Time `gorm:"not null;index"`
}

// WordReviewItem is one correct/incorrect judgment of a word within a
// session.
type WordReviewItem struct {
	ID             uint      `gorm:"primaryKey"`
	StudySessionID uint      `gorm:"not null;index"`
	WordID         uint      `gorm:"not null;index"`
	Correct        bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}
