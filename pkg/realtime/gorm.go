package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"Potluck-Backend/entities"

	"gorm.io/gorm"
)

type gormBackend struct {
	db *gorm.DB
}

// NewGormStore persists the tree one row per leaf in the documents table.
func NewGormStore(db *gorm.DB) Store {
	return newStore(&gormBackend{db: db})
}

func likePrefix(path string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(path) + "/%"
}

func subtree(tx *gorm.DB, path string) *gorm.DB {
	if path == "" {
		return tx.Where("1 = 1")
	}
	return tx.Where("path = ? OR path LIKE ? ESCAPE '\\'", path, likePrefix(path))
}

func (g *gormBackend) load(ctx context.Context, path string) (map[string]any, error) {
	var docs []entities.Document
	if err := subtree(g.db.WithContext(ctx), path).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}

	leaves := make(map[string]any, len(docs))
	for _, doc := range docs {
		var v any
		if err := json.Unmarshal([]byte(doc.Value), &v); err != nil {
			return nil, fmt.Errorf("decode %q: %w", doc.Path, err)
		}
		leaves[doc.Path] = v
	}
	return leaves, nil
}

func (g *gormBackend) apply(ctx context.Context, writes []write) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, w := range writes {
			if err := subtree(tx, w.path).Delete(&entities.Document{}).Error; err != nil {
				return fmt.Errorf("clear %q: %w", w.path, err)
			}
			if anc := ancestors(w.path); len(anc) > 0 {
				if err := tx.Where("path IN ?", anc).Delete(&entities.Document{}).Error; err != nil {
					return fmt.Errorf("clear ancestors of %q: %w", w.path, err)
				}
			}
			if len(w.leaves) == 0 {
				continue
			}

			docs := make([]entities.Document, 0, len(w.leaves))
			for p, v := range w.leaves {
				raw, err := json.Marshal(v)
				if err != nil {
					return fmt.Errorf("encode %q: %w", p, err)
				}
				docs = append(docs, entities.Document{Path: p, Value: string(raw)})
			}
			if err := tx.CreateInBatches(docs, 200).Error; err != nil {
				return fmt.Errorf("write %q: %w", w.path, err)
			}
		}
		return nil
	})
}
