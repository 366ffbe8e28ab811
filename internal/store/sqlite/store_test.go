package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/foodgram/foodgram-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustUser inserts a user with the given id; email and username derive from it.
func mustUser(t *testing.T, s *Store, id string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           id,
		Email:        id + "@example.com",
		Username:     id,
		FirstName:    "First " + id,
		LastName:     "Last " + id,
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s): %v", id, err)
	}
	return u
}

func mustIngredient(t *testing.T, s *Store, id, name, unit string) *domain.Ingredient {
	t.Helper()
	ing := &domain.Ingredient{ID: id, Name: name, MeasurementUnit: unit}
	if err := s.CreateIngredient(context.Background(), ing); err != nil {
		t.Fatalf("CreateIngredient(%s): %v", id, err)
	}
	return ing
}

func mustTag(t *testing.T, s *Store, id, name, color, slug string) *domain.Tag {
	t.Helper()
	tag := &domain.Tag{ID: id, Name: name, Color: color, Slug: slug}
	if err := s.CreateTag(context.Background(), tag); err != nil {
		t.Fatalf("CreateTag(%s): %v", id, err)
	}
	return tag
}

// mustRecipe inserts a recipe; lines alternate ingredient id and amount.
func mustRecipe(t *testing.T, s *Store, id, authorID, name string, pub time.Time, tagIDs []string, lines ...any) *domain.Recipe {
	t.Helper()
	r := &domain.Recipe{
		ID:          id,
		AuthorID:    authorID,
		Name:        name,
		Text:        "Mix and bake.",
		CookingTime: 30,
		PubDate:     pub,
	}
	for i := 0; i+1 < len(lines); i += 2 {
		r.Ingredients = append(r.Ingredients, domain.RecipeIngredient{
			IngredientID: lines[i].(string),
			Amount:       lines[i+1].(int),
		})
	}
	for _, tagID := range tagIDs {
		r.Tags = append(r.Tags, domain.Tag{ID: tagID})
	}
	if err := s.CreateRecipe(context.Background(), r); err != nil {
		t.Fatalf("CreateRecipe(%s): %v", id, err)
	}
	return r
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	var journalMode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	var fk int
	if err := s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	tables := []string{
		"users", "ingredients", "tags", "recipes", "recipe_ingredients",
		"recipe_tags", "favorites", "shopping_list", "follows",
	}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpen_Idempotent(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "twice.db")

	s1, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	mustUser(t, s1, "usr-keep")
	s1.Close()

	s2, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	if _, err := s2.GetUser(context.Background(), "usr-keep"); err != nil {
		t.Errorf("user lost across reopen: %v", err)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	in := time.Date(2024, 3, 1, 12, 30, 45, 120000000, time.FixedZone("X", 3*3600))
	out, err := parseTime(formatTime(in))
	if err != nil {
		t.Fatalf("parseTime: %v", err)
	}
	if !out.Equal(in) {
		t.Errorf("got %v, want %v", out, in)
	}

	// Fixed width keeps lexical order equal to chronological order.
	a := formatTime(time.Date(2024, 1, 1, 0, 0, 5, 0, time.UTC))
	b := formatTime(time.Date(2024, 1, 1, 0, 0, 5, 100000000, time.UTC))
	if !(a < b) {
		t.Errorf("expected %q < %q", a, b)
	}
}

func TestPlaceholders(t *testing.T) {
	cases := map[int]string{0: "", 1: "?", 3: "?, ?, ?"}
	for n, want := range cases {
		if got := placeholders(n); got != want {
			t.Errorf("placeholders(%d) = %q, want %q", n, got, want)
		}
	}
}
