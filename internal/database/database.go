package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/antonin-suzor/kanaschool/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Session{},
		&entities.Kana{},
		&entities.SessionKana{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	// Seed the kana catalog
	if err := database.seedKanas(); err != nil {
		return nil, fmt.Errorf("failed to seed kanas: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// seedKanas loads the kana catalog if the table is empty. Hiragana rows
// are inserted first, then katakana, both in gojuon order.
func (d *Database) seedKanas() error {
	var count int64
	if err := d.DB.Model(&entities.Kana{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	kanas := make([]entities.Kana, 0, 2*len(kanaCatalog))
	for _, entry := range kanaCatalog {
		kanas = append(kanas, entities.Kana{
			Reading:       entry.reading,
			IsKatakana:    false,
			Mod:           entry.mod,
			ConsonantLine: entry.line,
			VowelColumn:   entry.vowel,
			Unicode:       entry.hiragana,
		})
	}
	for _, entry := range kanaCatalog {
		kanas = append(kanas, entities.Kana{
			Reading:       entry.reading,
			IsKatakana:    true,
			Mod:           entry.mod,
			ConsonantLine: entry.line,
			VowelColumn:   entry.vowel,
			Unicode:       entry.katakana,
		})
	}

	if err := d.DB.Create(&kanas).Error; err != nil {
		return fmt.Errorf("failed to create kana catalog: %w", err)
	}
	log.Printf("Seeded kana catalog (%d characters)", len(kanas))
	return nil
}
