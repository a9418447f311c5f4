package testutil

import (
	"strings"
	"testing"

	"github.com/example/lang-portal/pkg/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB opens an isolated in-memory sqlite database with the full
// schema migrated and closes it when the test finishes.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	gdb, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}
	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
	})

	return gdb
}

// Fixture is the minimal vocabulary setup the session workflow needs: a
// group containing one word, plus an activity.
type Fixture struct {
	Group    db.Group
	Word     db.Word
	Activity db.StudyActivity
}

func SeedVocabulary(t *testing.T, gdb *gorm.DB) Fixture {
	t.Helper()

	group := db.Group{Name: "Core Verbs"}
	if err := gdb.Create(&group).Error; err != nil {
		t.Fatalf("failed to create group: %v", err)
	}

	word := db.Word{French: "bonjour", English: "hello"}
	if err := gdb.Create(&word).Error; err != nil {
		t.Fatalf("failed to create word: %v", err)
	}
	AddWordToGroup(t, gdb, &group, &word)

	activity := db.StudyActivity{Name: "Flashcards"}
	if err := gdb.Create(&activity).Error; err != nil {
		t.Fatalf("failed to create activity: %v", err)
	}

	return Fixture{Group: group, Word: word, Activity: activity}
}

func AddWordToGroup(t *testing.T, gdb *gorm.DB, group *db.Group, word *db.Word) {
	t.Helper()
	if err := gdb.Model(group).Association("Words").Append(word); err != nil {
		t.Fatalf("failed to add word to group: %v", err)
	}
}
