package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"

	"gamecrowd/backend/internal/domain/catalog"
	"gamecrowd/backend/internal/repository"

	"gorm.io/gorm"
)

// Result 汇总一次导入的统计信息。
type Result struct {
	GamesCreated      int
	GamesSkipped      int
	CategoriesCreated int
	PublishersCreated int
}

// ImportCSV 从 CSV 导入游戏目录。分类与发行商按名称幂等创建，
// 已存在的游戏标题直接跳过，整个导入在单个事务内提交。
// CSV 需要表头，至少包含 Title、Description、Category、Publisher 列。
func ImportCSV(ctx context.Context, db *gorm.DB, path string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open seed csv: %w", err)
	}
	defer file.Close()

	rows, err := readRows(file)
	if err != nil {
		return Result{}, err
	}

	var result Result
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := repository.NewCategoryRepository(tx)
		publishers := repository.NewPublisherRepository(tx)
		games := repository.NewGameRepository(tx)

		categoryByName := map[string]*catalog.Category{}
		publisherByName := map[string]*catalog.Publisher{}

		for _, row := range rows {
			category, created, err := ensureCategory(ctx, categories, categoryByName, row.Category)
			if err != nil {
				return err
			}
			if created {
				result.CategoriesCreated++
			}

			publisher, created, err := ensurePublisher(ctx, publishers, publisherByName, row.Publisher)
			if err != nil {
				return err
			}
			if created {
				result.PublishersCreated++
			}

			if _, err := games.FindByTitle(ctx, row.Title); err == nil {
				result.GamesSkipped++
				continue
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("lookup game %q: %w", row.Title, err)
			}

			rating := randomStarRating()
			game, err := catalog.NewGame(
				row.Title,
				row.Description+" Support this game through our crowdfunding platform!",
				category.ID,
				publisher.ID,
				&rating,
			)
			if err != nil {
				return fmt.Errorf("seed game %q: %w", row.Title, err)
			}
			if err := games.Create(ctx, game); err != nil {
				return err
			}
			result.GamesCreated++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

type seedRow struct {
	Title       string
	Description string
	Category    string
	Publisher   string
}

func readRows(r io.Reader) ([]seedRow, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := map[string]int{}
	for i, name := range header {
		index[name] = i
	}
	for _, required := range []string{"Title", "Description", "Category", "Publisher"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("seed csv missing column %q", required)
		}
	}

	var rows []seedRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		rows = append(rows, seedRow{
			Title:       record[index["Title"]],
			Description: record[index["Description"]],
			Category:    record[index["Category"]],
			Publisher:   record[index["Publisher"]],
		})
	}
	return rows, nil
}

func ensureCategory(ctx context.Context, repo *repository.CategoryRepository, cache map[string]*catalog.Category, name string) (*catalog.Category, bool, error) {
	if cached, ok := cache[name]; ok {
		return cached, false, nil
	}
	existing, err := repo.FindByName(ctx, name)
	if err == nil {
		cache[name] = existing
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("lookup category %q: %w", name, err)
	}

	entity, err := catalog.NewCategory(name, fmt.Sprintf("Collection of %s games available for crowdfunding", name))
	if err != nil {
		return nil, false, fmt.Errorf("seed category %q: %w", name, err)
	}
	if err := repo.Create(ctx, entity); err != nil {
		return nil, false, err
	}
	cache[name] = entity
	return entity, true, nil
}

func ensurePublisher(ctx context.Context, repo *repository.PublisherRepository, cache map[string]*catalog.Publisher, name string) (*catalog.Publisher, bool, error) {
	if cached, ok := cache[name]; ok {
		return cached, false, nil
	}
	existing, err := repo.FindByName(ctx, name)
	if err == nil {
		cache[name] = existing
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("lookup publisher %q: %w", name, err)
	}

	entity, err := catalog.NewPublisher(name, fmt.Sprintf("%s is a game publisher seeking funding for exciting new titles", name))
	if err != nil {
		return nil, false, fmt.Errorf("seed publisher %q: %w", name, err)
	}
	if err := repo.Create(ctx, entity); err != nil {
		return nil, false, err
	}
	cache[name] = entity
	return entity, true, nil
}

// randomStarRating 返回 3.0 到 5.0 之间保留一位小数的随机评分。
func randomStarRating() float64 {
	return math.Round((3.0+rand.Float64()*2.0)*10) / 10
}
