package study

import (
	"context"
	"errors"
	"testing"

	"github.com/example/lang-portal/pkg/db"
	"github.com/example/lang-portal/pkg/internal/testutil"
)

func TestCreateSession(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	f := testutil.SeedVocabulary(t, gdb)
	store := NewStore(gdb)

	session, err := store.CreateSession(context.Background(), int(f.Group.ID), int(f.Activity.ID))
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}

	if session.ID == 0 {
		t.Error("expected a non-zero session id")
	}
	if session.GroupID != f.Group.ID || session.GroupName != "Core Verbs" {
		t.Errorf("unexpected group projection: %+v", session)
	}
	if session.ActivityID != f.Activity.ID || session.ActivityName != "Flashcards" {
		t.Errorf("unexpected activity projection: %+v", session)
	}
	if session.ReviewItemsCount != 0 {
		t.Errorf("expected review_items_count 0, got %d", session.ReviewItemsCount)
	}
	if !session.StartTime.Equal(session.EndTime) {
		t.Errorf("expected start_time == end_time, got %v and %v", session.StartTime, session.EndTime)
	}
}

func TestCreateSessionGroupNotFound(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	f := testutil.SeedVocabulary(t, gdb)
	store := NewStore(gdb)

	// The group check wins even when the activity is also bogus.
	for _, activityID := range []int{int(f.Activity.ID), 999} {
		_, err := store.CreateSession(context.Background(), 999, activityID)
		assertKind(t, err, KindNotFound, "Group not found")
	}
}

func TestCreateSessionActivityNotFound(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	f := testutil.SeedVocabulary(t, gdb)
	store := NewStore(gdb)

	_, err := store.CreateSession(context.Background(), int(f.Group.ID), 999)
	assertKind(t, err, KindNotFound, "Study activity not found")
}

func TestCreateReviewItem(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	f := testutil.SeedVocabulary(t, gdb)
	store := NewStore(gdb)
	ctx := context.Background()

	session, err := store.CreateSession(ctx, int(f.Group.ID), int(f.Activity.ID))
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}

	review, err := store.CreateReviewItem(ctx, int(session.ID), int(f.Word.ID), true)
	if err != nil {
		t.Fatalf("CreateReviewItem returned error: %v", err)
	}
	if review.ID == 0 {
		t.Error("expected a non-zero review id")
	}
	if review.WordID != f.Word.ID || review.French != "bonjour" || review.English != "hello" {
		t.Errorf("unexpected review projection: %+v", review)
	}
	if !review.Correct {
		t.Error("expected correct to be true")
	}
	if review.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	detail, err := store.GetSession(ctx, int(session.ID), 1, 10)
	if err != nil {
		t.Fatalf("GetSession returned error: %v", err)
	}
	if detail.Session.ReviewItemsCount != 1 {
		t.Errorf("expected review_items_count 1, got %d", detail.Session.ReviewItemsCount)
	}
	if len(detail.Words) != 1 || detail.Words[0].CorrectCount != 1 || detail.Words[0].WrongCount != 0 {
		t.Errorf("unexpected session words: %+v", detail.Words)
	}
}

func TestCreateReviewItemSessionNotFound(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	f := testutil.SeedVocabulary(t, gdb)
	store := NewStore(gdb)

	_, err := store.CreateReviewItem(context.Background(), 999999, int(f.Word.ID), true)
	assertKind(t, err, KindNotFound, "Study session not found")
}

func TestCreateReviewItemWordNotInGroup(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	f := testutil.SeedVocabulary(t, gdb)
	store := NewStore(gdb)
	ctx := context.Background()

	// A word that exists globally but is not a member of the
	// session's group must be rejected.
	stray := db.Word{French: "fromage", English: "cheese"}
	if err := gdb.Create(&stray).Error; err != nil {
		t.Fatalf("failed to create stray word: %v", err)
	}

	session, err := store.CreateSession(ctx, int(f.Group.ID), int(f.Activity.ID))
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}

	_, err = store.CreateReviewItem(ctx, int(session.ID), int(stray.ID), true)
	assertKind(t, err, KindNotFound, "Word not found or not in group")

	// The failed attempt must leave no partial state behind.
	var count int64
	if err := gdb.Model(&db.WordReviewItem{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count review items: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no review items after rejected write, got %d", count)
	}
}

func assertKind(t *testing.T, err error, kind Kind, message string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", message)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *study.Error, got %T: %v", err, err)
	}
	if e.Kind != kind {
		t.Errorf("expected kind %v, got %v", kind, e.Kind)
	}
	if e.Message != message {
		t.Errorf("expected message %q, got %q", message, e.Message)
	}
}
