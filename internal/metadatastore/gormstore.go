package metadatastore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sonica-audio/engine/internal/metrics"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sonica-audio/engine/internal/logger"
)

// trackRecord is the GORM model backing the Postgres-held side of
// TrackMetadata, plus the serialized fingerprint blob exchanged per §6.
type trackRecord struct {
	TrackID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title           string
	Artist          string
	Album           string
	DurationSec     float64
	Tags            pq.StringArray `gorm:"type:text[]"`
	FingerprintBlob []byte         `gorm:"type:bytea"`
	CreatedAt       time.Time
}

func (trackRecord) TableName() string { return "tracks" }

// GormStore is a Postgres-backed Store.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens a pooled Postgres connection and auto-migrates the
// track table.
func NewGormStore(databaseURL string) (*GormStore, error) {
	if databaseURL == "" {
		host := getEnvOrDefault("DB_HOST", "localhost")
		port := getEnvOrDefault("DB_PORT", "5432")
		user := getEnvOrDefault("DB_USER", "postgres")
		password := getEnvOrDefault("DB_PASSWORD", "")
		dbname := getEnvOrDefault("DB_NAME", "sonica")
		sslmode := getEnvOrDefault("DB_SSLMODE", "disable")
		databaseURL = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	gormLogger := gormlogger.Default
	if os.Getenv("ENVIRONMENT") == "development" {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&trackRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate track table: %w", err)
	}

	logger.Log.Info("metadata store connected successfully", zap.String("component", "metadatastore"))
	return &GormStore{db: db}, nil
}

func (s *GormStore) GetTrack(ctx context.Context, id uuid.UUID) (*TrackMetadata, error) {
	start := time.Now()
	defer func() {
		metrics.Get().MetadataStoreDuration.WithLabelValues("get_track").Observe(time.Since(start).Seconds())
	}()

	var rec trackRecord
	err := s.db.WithContext(ctx).First(&rec, "track_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		metrics.Get().MetadataStoreErrors.WithLabelValues("get_track").Inc()
		return nil, err
	}

	return &TrackMetadata{
		TrackID:     rec.TrackID,
		Title:       rec.Title,
		Artist:      rec.Artist,
		Album:       rec.Album,
		DurationSec: rec.DurationSec,
		Tags:        []string(rec.Tags),
	}, nil
}

func (s *GormStore) PutTrack(ctx context.Context, meta TrackMetadata, fingerprintBlob []byte) error {
	start := time.Now()
	defer func() {
		metrics.Get().MetadataStoreDuration.WithLabelValues("put_track").Observe(time.Since(start).Seconds())
	}()

	rec := trackRecord{
		TrackID:         meta.TrackID,
		Title:           meta.Title,
		Artist:          meta.Artist,
		Album:           meta.Album,
		DurationSec:     meta.DurationSec,
		Tags:            pq.StringArray(meta.Tags),
		FingerprintBlob: fingerprintBlob,
		CreatedAt:       time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Save(&rec).Error
	if err != nil {
		metrics.Get().MetadataStoreErrors.WithLabelValues("put_track").Inc()
	}
	return err
}

func (s *GormStore) SearchByText(ctx context.Context, query string, limit int) ([]TrackMetadata, error) {
	start := time.Now()
	defer func() {
		metrics.Get().MetadataStoreDuration.WithLabelValues("search_by_text").Observe(time.Since(start).Seconds())
	}()

	var recs []trackRecord
	err := s.db.WithContext(ctx).
		Where("title ILIKE ? OR artist ILIKE ?", "%"+query+"%", "%"+query+"%").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		metrics.Get().MetadataStoreErrors.WithLabelValues("search_by_text").Inc()
		return nil, err
	}

	out := make([]TrackMetadata, 0, len(recs))
	for _, rec := range recs {
		out = append(out, TrackMetadata{
			TrackID:     rec.TrackID,
			Title:       rec.Title,
			Artist:      rec.Artist,
			Album:       rec.Album,
			DurationSec: rec.DurationSec,
			Tags:        []string(rec.Tags),
		})
	}
	return out, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
