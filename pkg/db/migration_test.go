package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openMigrationTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
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

func TestMigrateRenamesLegacyJoinTable(t *testing.T) {
	gdb := openMigrationTestDB(t, "legacy_join_table")

	if err := gdb.Exec(`CREATE TABLE word_groups (group_id INTEGER NOT NULL, word_id INTEGER NOT NULL, PRIMARY KEY (group_id, word_id))`).Error; err != nil {
		t.Fatalf("failed to create legacy table: %v", err)
	}
	if err := gdb.Exec(`INSERT INTO word_groups (group_id, word_id) VALUES (1, 1), (1, 2)`).Error; err != nil {
		t.Fatalf("failed to seed legacy table: %v", err)
	}

	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	migrator := gdb.Migrator()
	if migrator.HasTable("word_groups") {
		t.Error("legacy word_groups table should be gone after migration")
	}
	if !migrator.HasTable("group_words") {
		t.Fatal("canonical group_words table is missing after migration")
	}

	var count int64
	if err := gdb.Raw(`SELECT COUNT(*) FROM group_words`).Scan(&count).Error; err != nil {
		t.Fatalf("failed to count migrated rows: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 migrated membership rows, got %d", count)
	}
}

func TestMigrateIsStableWithoutLegacyTable(t *testing.T) {
	gdb := openMigrationTestDB(t, "fresh_schema")

	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate failed on fresh database: %v", err)
	}
	// Second run must be a no-op.
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate failed on second run: %v", err)
	}

	migrator := gdb.Migrator()
	for _, table := range []string{"groups", "words", "study_activities", "study_sessions", "word_review_items", "group_words"} {
		if !migrator.HasTable(table) {
			t.Errorf("expected table %s to exist", table)
		}
	}
}
