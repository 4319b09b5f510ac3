package postgres

import (
	"context"
	"fmt"
	"log"
	"time"

	"geoquiz/internal/model"
	"geoquiz/internal/projection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 500

// CityPG is one dataset record of one snapshot
type CityPG struct {
	ID          uint    `gorm:"primaryKey"`
	Snapshot    string  `gorm:"size:32;not null;uniqueIndex:idx_snapshot_position"`
	Position    int     `gorm:"not null;uniqueIndex:idx_snapshot_position"`
	NameDefault *string `gorm:"size:255"`
	NameFr      *string `gorm:"size:255;index"`
	NameNl      *string `gorm:"size:255"`
	Lat         float64 `gorm:"not null"`
	Lon         float64 `gorm:"not null"`
	BoardX      *float64
	BoardY      *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name
func (CityPG) TableName() string {
	return "cities"
}

// ToCityPG maps dataset records to rows. Board coordinates are filled when
// tr is not nil.
func ToCityPG(snapshot string, cities []model.CityRecord, tr *projection.BoardTransform) ([]CityPG, error) {
	rows := make([]CityPG, 0, len(cities))
	for i, c := range cities {
		row := CityPG{
			Snapshot:    snapshot,
			Position:    i,
			NameDefault: c.NameDefault,
			NameFr:      c.NameFr,
			NameNl:      c.NameNl,
			Lat:         c.Lat,
			Lon:         c.Lon,
		}
		if tr != nil {
			p, err := tr.ToBoard(c.Lon, c.Lat)
			if err != nil {
				return nil, fmt.Errorf("city %d: %w", i, err)
			}
			row.BoardX, row.BoardY = &p[0], &p[1]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ToCityRecord maps a row back to a dataset record
func (c CityPG) ToCityRecord() model.CityRecord {
	return model.CityRecord{
		NameDefault: c.NameDefault,
		NameFr:      c.NameFr,
		NameNl:      c.NameNl,
		Lat:         c.Lat,
		Lon:         c.Lon,
	}
}

type CityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) *CityRepository {
	return &CityRepository{db: db}
}

// SaveSnapshot upserts rows in batches, each batch in its own transaction.
func (r *CityRepository) SaveSnapshot(ctx context.Context, rows []CityPG) error {
	total := len(rows)
	for i := 0; i < total; i += batchSize {
		end := i + batchSize
		if end > total {
			end = total
		}
		batch := rows[i:end]

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "snapshot"}, {Name: "position"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"name_default", "name_fr", "name_nl", "lat", "lon", "board_x", "board_y", "updated_at",
				}),
			}).Create(&batch).Error
		})
		if err != nil {
			return fmt.Errorf("save cities %d-%d: %w", i, end, err)
		}
		log.Printf("Saved cities %d-%d of %d", i+1, end, total)
	}
	return nil
}

// LoadSnapshot returns the records of one snapshot in dataset order.
func (r *CityRepository) LoadSnapshot(ctx context.Context, snapshot string) ([]model.CityRecord, error) {
	var rows []CityPG
	err := r.db.WithContext(ctx).
		Where("snapshot = ?", snapshot).
		Order("position").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", snapshot, err)
	}

	cities := make([]model.CityRecord, 0, len(rows))
	for _, row := range rows {
		cities = append(cities, row.ToCityRecord())
	}
	return cities, nil
}

// Snapshots lists stored snapshot ids, newest first.
func (r *CityRepository) Snapshots(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&CityPG{}).
		Select("snapshot").
		Group("snapshot").
		Order("MAX(created_at) DESC").
		Pluck("snapshot", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return ids, nil
}
