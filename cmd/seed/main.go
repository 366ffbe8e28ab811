// Package main seeds a Foodgram database with demo users, catalogue entries
// and recipes.
//
// Usage:
//
//	go run ./cmd/seed --data-path ~/Foodgram/data
//	go run ./cmd/seed --data-path ./tmp --password secret123
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/foodgram/foodgram-server/internal/auth"
	"github.com/foodgram/foodgram-server/internal/domain"
	domainerrors "github.com/foodgram/foodgram-server/internal/errors"
	"github.com/foodgram/foodgram-server/internal/logger"
	"github.com/foodgram/foodgram-server/internal/service"
	"github.com/foodgram/foodgram-server/internal/store/sqlite"
	"github.com/foodgram/foodgram-server/internal/validation"
)

var (
	dataPath = flag.String("data-path", "", "Directory holding foodgram.db (default: ~/Foodgram/data)")
	password = flag.String("password", "foodgram123", "Password for every demo user")
)

type demoTag struct{ name, color string }

type demoIngredient struct{ name, unit string }

type demoLine struct {
	ingredient string
	amount     int
}

type demoRecipe struct {
	author      string
	name        string
	text        string
	cookingTime int
	tags        []string
	lines       []demoLine
}

var (
	demoUsers = []string{"chef", "baker", "guest"}

	demoTags = []demoTag{
		{"Завтрак", "#E26C2D"},
		{"Обед", "#49B64E"},
		{"Ужин", "#8775D2"},
	}

	demoIngredients = []demoIngredient{
		{"мука", "г"},
		{"яйца", "шт."},
		{"молоко", "мл"},
		{"сахар", "г"},
		{"соль", "г"},
		{"картофель", "г"},
		{"сливочное масло", "г"},
	}

	demoRecipes = []demoRecipe{
		{
			author: "chef", name: "Блины", cookingTime: 30,
			text: "Смешать муку, яйца и молоко. Жарить на сковороде.",
			tags: []string{"Завтрак"},
			lines: []demoLine{
				{"мука", 200}, {"яйца", 2}, {"молоко", 500}, {"сахар", 20}, {"соль", 3},
			},
		},
		{
			author: "chef", name: "Картофельное пюре", cookingTime: 40,
			text: "Отварить картофель, размять с маслом и молоком.",
			tags: []string{"Обед", "Ужин"},
			lines: []demoLine{
				{"картофель", 800}, {"сливочное масло", 50}, {"молоко", 150}, {"соль", 5},
			},
		},
		{
			author: "baker", name: "Омлет", cookingTime: 10,
			text: "Взбить яйца с молоком и запечь.",
			tags: []string{"Завтрак"},
			lines: []demoLine{
				{"яйца", 3}, {"молоко", 100}, {"соль", 2},
			},
		},
	}
)

func main() {
	flag.Parse()

	log := logger.New(logger.Config{Level: logger.ParseLevel("info")})

	dir := *dataPath
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal("Failed to resolve home directory", "error", err)
		}
		dir = filepath.Join(home, "Foodgram", "data")
	}
	dbPath := filepath.Join(dir, "foodgram.db")

	st, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		log.Fatal("Failed to open store", "path", dbPath, "error", err)
	}
	defer st.Close()

	key, err := auth.LoadOrGenerateKey(dir)
	if err != nil {
		log.Fatal("Failed to load auth key", "error", err)
	}
	tokens, err := auth.NewTokenService(key, time.Hour)
	if err != nil {
		log.Fatal("Failed to create token service", "error", err)
	}

	v := validation.New()
	s := &seeder{
		auth:        service.NewAuthService(st, tokens, auth.NewPasswordHasher(auth.DefaultArgon2Params), v, log.Logger),
		tags:        service.NewTagService(st, v, log.Logger),
		ingredients: service.NewIngredientService(st, v, log.Logger),
		recipes:     service.NewRecipeService(st, v, 0, log.Logger),
		cart:        service.NewCartService(st, log.Logger),
		users:       map[string]string{},
		tagIDs:      map[string]string{},
		ingIDs:      map[string]string{},
	}

	if err := s.run(context.Background()); err != nil {
		log.Fatal("Seeding failed", "error", err)
	}

	fmt.Printf("Seeded %s. Demo users log in as <name>@example.com with password %q.\n", dbPath, *password)
}

type seeder struct {
	auth        *service.AuthService
	tags        *service.TagService
	ingredients *service.IngredientService
	recipes     *service.RecipeService
	cart        *service.CartService

	users  map[string]string
	tagIDs map[string]string
	ingIDs map[string]string
}

func (s *seeder) run(ctx context.Context) error {
	for _, name := range demoUsers {
		user, err := s.auth.Register(ctx, service.RegisterRequest{
			Email:     name + "@example.com",
			Username:  name,
			FirstName: name,
			LastName:  "Demo",
			Password:  *password,
		})
		if isExisting(err) {
			return fmt.Errorf("user %s already exists; seed an empty database", name)
		}
		if err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
		s.users[name] = user.ID
	}

	for _, t := range demoTags {
		tag, err := s.tags.CreateTag(ctx, service.CreateTagRequest{Name: t.name, Color: t.color, Slug: slugFor(t.name)})
		if err != nil {
			return fmt.Errorf("create tag %s: %w", t.name, err)
		}
		s.tagIDs[t.name] = tag.ID
	}

	for _, ing := range demoIngredients {
		created, err := s.ingredients.CreateIngredient(ctx, service.CreateIngredientRequest{Name: ing.name, MeasurementUnit: ing.unit})
		if err != nil {
			return fmt.Errorf("create ingredient %s: %w", ing.name, err)
		}
		s.ingIDs[ing.name] = created.ID
	}

	var created []*domain.RecipeView
	for _, r := range demoRecipes {
		view, err := s.recipes.CreateRecipe(ctx, s.users[r.author], s.recipeInput(r))
		if err != nil {
			return fmt.Errorf("create recipe %s: %w", r.name, err)
		}
		created = append(created, view)
	}

	guest := s.users["guest"]
	for _, view := range created {
		if _, err := s.cart.AddToCart(ctx, guest, view.ID); err != nil {
			return fmt.Errorf("add %s to cart: %w", view.Name, err)
		}
	}

	return nil
}

func (s *seeder) recipeInput(r demoRecipe) service.RecipeInput {
	in := service.RecipeInput{
		Name:        r.name,
		Text:        r.text,
		CookingTime: r.cookingTime,
	}
	for _, t := range r.tags {
		in.Tags = append(in.Tags, s.tagIDs[t])
	}
	for _, l := range r.lines {
		in.Ingredients = append(in.Ingredients, service.IngredientAmount{ID: s.ingIDs[l.ingredient], Amount: l.amount})
	}
	return in
}

// slugFor gives the Cyrillic demo tags latin slugs.
func slugFor(name string) string {
	switch name {
	case "Завтрак":
		return "breakfast"
	case "Обед":
		return "lunch"
	case "Ужин":
		return "dinner"
	}
	return ""
}

func isExisting(err error) bool {
	var domainErr *domainerrors.Error
	return errors.As(err, &domainErr) && domainErr.Code == domainerrors.CodeAlreadyExists
}
