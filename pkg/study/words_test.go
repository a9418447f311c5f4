package study

import (
	"context"
	"testing"

	"github.com/example/lang-portal/pkg/db"
	"github.com/example/lang-portal/pkg/internal/testutil"
)

func TestGroupWords(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	f := testutil.SeedVocabulary(t, gdb)
	store := NewStore(gdb)
	ctx := context.Background()

	never := db.Word{French: "abeille", English: "bee"}
	if err := gdb.Create(&never).Error; err != nil {
		t.Fatalf("failed to create word: %v", err)
	}
	testutil.AddWordToGroup(t, gdb, &f.Group, &never)

	session, err := store.CreateSession(ctx, int(f.Group.ID), int(f.Activity.ID))
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if _, err := store.CreateReviewItem(ctx, int(session.ID), int(f.Word.ID), true); err != nil {
		t.Fatalf("CreateReviewItem returned error: %v", err)
	}
	if _, err := store.CreateReviewItem(ctx, int(session.ID), int(f.Word.ID), false); err != nil {
		t.Fatalf("CreateReviewItem returned error: %v", err)
	}

	words, err := store.GroupWords(ctx, int(f.Group.ID))
	if err != nil {
		t.Fatalf("GroupWords returned error: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	// Ordered by french: abeille before bonjour.
	if words[0].French != "abeille" || words[0].CorrectCount != 0 || words[0].WrongCount != 0 {
		t.Errorf("unreviewed word must appear with zero counts, got %+v", words[0])
	}
	if words[1].French != "bonjour" || words[1].CorrectCount != 1 || words[1].WrongCount != 1 {
		t.Errorf("unexpected counts for reviewed word: %+v", words[1])
	}
}

func TestGroupWordsSharedWordCountsAllTime(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	f := testutil.SeedVocabulary(t, gdb)
	store := NewStore(gdb)
	ctx := context.Background()

	// The seeded word also belongs to a second group, which is where
	// all of its reviews happen.
	other := db.Group{Name: "Greetings"}
	if err := gdb.Create(&other).Error; err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	testutil.AddWordToGroup(t, gdb, &other, &f.Word)

	session, err := store.CreateSession(ctx, int(other.ID), int(f.Activity.ID))
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if _, err := store.CreateReviewItem(ctx, int(session.ID), int(f.Word.ID), true); err != nil {
		t.Fatalf("CreateReviewItem returned error: %v", err)
	}

	// The counts follow the word across groups.
	for _, groupID := range []int{int(f.Group.ID), int(other.ID)} {
		words, err := store.GroupWords(ctx, groupID)
		if err != nil {
			t.Fatalf("GroupWords(%d) returned error: %v", groupID, err)
		}
		if len(words) != 1 {
			t.Fatalf("expected 1 word in group %d, got %d", groupID, len(words))
		}
		if words[0].CorrectCount != 1 || words[0].WrongCount != 0 {
			t.Errorf("group %d: expected all-time counts 1/0, got %+v", groupID, words[0])
		}
	}
}

func TestGroupWordsGroupNotFound(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	store := NewStore(gdb)

	_, err := store.GroupWords(context.Background(), 999999)
	assertKind(t, err, KindNotFound, "Group not found")
}
