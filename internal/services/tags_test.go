package services

import (
	"errors"
	"testing"

	"devflow/internal/db"
	"devflow/internal/models"
)

func TestTagsCreatorCreatesMissingTags(t *testing.T) {
	setupTestDB(t)

	tags, err := TagsCreator("#go#web")
	if err != nil {
		t.Fatalf("TagsCreator failed: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}
	if tags[0].Title != "go" || tags[1].Title != "web" {
		t.Errorf("unexpected titles: %q, %q", tags[0].Title, tags[1].Title)
	}
}

func TestTagsCreatorReusesExistingTags(t *testing.T) {
	setupTestDB(t)

	first, err := TagsCreator("#go#web")
	if err != nil {
		t.Fatalf("first TagsCreator failed: %v", err)
	}
	second, err := TagsCreator("#go#web")
	if err != nil {
		t.Fatalf("second TagsCreator failed: %v", err)
	}
	if first[0].ID != second[0].ID || first[1].ID != second[1].ID {
		t.Errorf("expected tags to be reused, got %v vs %v", first, second)
	}

	var count int64
	db.DB.Model(&models.Tag{}).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 tag rows, got %d", count)
	}
}

func TestTagsCreatorStripsWhitespace(t *testing.T) {
	setupTestDB(t)

	tags, err := TagsCreator("#go lang# web dev")
	if err != nil {
		t.Fatalf("TagsCreator failed: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}
	if tags[0].Title != "golang" || tags[1].Title != "webdev" {
		t.Errorf("expected stripped titles, got %q, %q", tags[0].Title, tags[1].Title)
	}
}

func TestTagsCreatorRejectsEmpty(t *testing.T) {
	setupTestDB(t)

	for _, input := range []string{"", "#", "# ", "##"} {
		if _, err := TagsCreator(input); !errors.Is(err, ErrValidation) {
			t.Errorf("input %q: expected ErrValidation, got %v", input, err)
		}
	}
}

func TestTagsRoundTrip(t *testing.T) {
	setupTestDB(t)

	input := "#go #web #gin"
	tags, err := TagsCreator(input)
	if err != nil {
		t.Fatalf("TagsCreator failed: %v", err)
	}
	if got := TagsToString(tags); got != input {
		t.Errorf("round trip: expected %q, got %q", input, got)
	}
}

func TestTagsToStringEmpty(t *testing.T) {
	if got := TagsToString(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
