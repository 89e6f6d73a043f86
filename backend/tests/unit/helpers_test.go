package unit

import (
	"context"
	"fmt"
	"testing"

	"gamecrowd/backend/internal/app"
	"gamecrowd/backend/internal/domain/catalog"
	"gamecrowd/backend/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB opens a dedicated in-memory database and migrates the full schema.
func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := app.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedCatalog creates one category and one publisher to hang games off.
func seedCatalog(t *testing.T, db *gorm.DB) (*catalog.Category, *catalog.Publisher) {
	t.Helper()

	ctx := context.Background()
	category, err := catalog.NewCategory("Strategy", "Collection of strategy games available for crowdfunding")
	if err != nil {
		t.Fatalf("new category: %v", err)
	}
	if err := repository.NewCategoryRepository(db).Create(ctx, category); err != nil {
		t.Fatalf("create category: %v", err)
	}

	publisher, err := catalog.NewPublisher("DevGames Inc", "DevGames Inc is a game publisher seeking funding for exciting new titles")
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	if err := repository.NewPublisherRepository(db).Create(ctx, publisher); err != nil {
		t.Fatalf("create publisher: %v", err)
	}
	return category, publisher
}

// seedGame creates a game under the given category and publisher.
func seedGame(t *testing.T, db *gorm.DB, title string, categoryID, publisherID uint) *catalog.Game {
	t.Helper()

	rating := 4.5
	game, err := catalog.NewGame(title, "Build your DevOps pipeline before chaos ensues", categoryID, publisherID, &rating)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if err := repository.NewGameRepository(db).Create(context.Background(), game); err != nil {
		t.Fatalf("create game: %v", err)
	}
	return game
}
