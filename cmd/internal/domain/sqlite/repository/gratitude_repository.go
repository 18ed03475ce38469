package repository

import (
	"errors"
	"gorm.io/gorm"
	"gratitude/cmd/internal/domain/entity"
)

type DefaultGratitudeRepository struct {
	db *gorm.DB
}

func NewGratitudeRepository(db *gorm.DB) *DefaultGratitudeRepository {
	return &DefaultGratitudeRepository{db: db}
}

// FindAll returns every entry, oldest first. Entries sharing a timestamp keep
// their insertion order.
func (g *DefaultGratitudeRepository) FindAll() ([]*entity.Gratitude, error) {
	var entries []*entity.Gratitude
	err := g.db.
		Order("created_at ASC").
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (g *DefaultGratitudeRepository) Count() (int64, error) {
	var total int64
	err := g.db.Model(&entity.Gratitude{}).Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (g *DefaultGratitudeRepository) FindByID(id int) (*entity.Gratitude, error) {
	var entry entity.Gratitude
	err := g.db.First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (g *DefaultGratitudeRepository) Create(entry *entity.Gratitude) error {
	return g.db.Create(entry).Error
}

// UpdateContent writes only the content column, so created_at is never touched.
func (g *DefaultGratitudeRepository) UpdateContent(entry *entity.Gratitude, content string) error {
	err := g.db.Model(entry).Update("content", content).Error
	if err != nil {
		return err
	}
	entry.Content = content
	return nil
}

func (g *DefaultGratitudeRepository) Delete(entry *entity.Gratitude) error {
	return g.db.Delete(entry).Error
}
