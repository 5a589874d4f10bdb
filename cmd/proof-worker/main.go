package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/disintegration/imaging"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/groomspot/groomspot-api/internal/config"
	"github.com/groomspot/groomspot-api/internal/domain/booking"
	"github.com/groomspot/groomspot-api/internal/pkg/database"
	"github.com/groomspot/groomspot-api/internal/pkg/logger"
	"github.com/groomspot/groomspot-api/internal/pkg/storage"
)

const (
	pollInterval = 5 * time.Second
	maxAttempts  = 3
	thumbSide    = 400
	jpegQuality  = 85
)

type imageJob struct {
	ID  string `db:"id"`
	Key string `db:"key"`
}

// jobSource names the table and columns one kind of upload lives in.
// Both payment proofs and groomer verification documents get thumbnails.
type jobSource struct {
	name       string
	table      string
	keyColumn  string
	thumbCol   string
	attemptCol string
	errorCol   string
}

var jobSources = []jobSource{
	{
		name:       "payment_proof",
		table:      "bookings",
		keyColumn:  "payment_proof_key",
		thumbCol:   "proof_thumb_key",
		attemptCol: "proof_attempts",
		errorCol:   "proof_error",
	},
	{
		name:       "provider_document",
		table:      "groomer_profiles",
		keyColumn:  "document_key",
		thumbCol:   "doc_thumb_key",
		attemptCol: "doc_attempts",
		errorCol:   "doc_error",
	},
}

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().Msg("Starting proof-worker")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	store, err := newStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional: Redis pub/sub wake-up (polling still runs)
	wake := make(chan struct{}, 1)
	if rdb != nil {
		go subscribeWakeups(ctx, rdb, wake)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigChan
		log.Info().Msg("Shutdown signal received")
		cancel()
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	lastIdleLog := time.Time{}
	idleLogEvery := 1 * time.Minute

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("proof-worker stopped")
			return
		case <-wake:
			// immediate poll
		case <-ticker.C:
		}

		// One job at a time; a single worker is enough for this volume
		worked := false
		for _, src := range jobSources {
			if runOne(ctx, db, store, src) {
				worked = true
			}
		}
		if !worked {
			now := time.Now()
			if lastIdleLog.IsZero() || now.Sub(lastIdleLog) >= idleLogEvery {
				log.Info().Msg("Idle: no unprocessed uploads found")
				lastIdleLog = now
			}
		}
	}
}

// runOne claims and processes at most one job from the source. Reports
// whether a job was claimed.
func runOne(ctx context.Context, db *sqlx.DB, store storage.Storage, src jobSource) bool {
	job, ok, err := claimNextJob(ctx, db, src)
	if err != nil {
		log.Error().Err(err).Str("source", src.name).Msg("DB error while claiming job")
		return false
	}
	if !ok {
		return false
	}

	start := time.Now()
	log.Info().
		Str("source", src.name).
		Str("id", job.ID).
		Str("key", job.Key).
		Msg("Processing image")

	thumbKey, err := processOne(ctx, store, job.Key)
	if err != nil {
		log.Error().
			Err(err).
			Str("source", src.name).
			Str("id", job.ID).
			Msg("Processing failed")

		if err2 := markFailed(ctx, db, src, job.ID, err.Error()); err2 != nil {
			log.Error().Err(err2).Str("id", job.ID).Msg("Failed to record processing error")
		}
		return true
	}

	if err := markDone(ctx, db, src, job.ID, thumbKey); err != nil {
		log.Error().Err(err).Str("id", job.ID).Msg("Failed to record thumbnail key")
		return true
	}

	log.Info().
		Str("source", src.name).
		Str("id", job.ID).
		Str("thumb_key", thumbKey).
		Dur("took", time.Since(start)).
		Msg("Processing done")
	return true
}

func processOne(ctx context.Context, store storage.Storage, proofKey string) (string, error) {
	rc, err := store.Get(ctx, proofKey)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}

	thumb := imaging.Fit(img, thumbSide, thumbSide, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("encode thumb: %w", err)
	}

	base := strings.TrimSuffix(proofKey, path.Ext(proofKey))
	thumbKey := base + "_thumb.jpg"
	if err := store.Put(ctx, thumbKey, bytes.NewReader(buf.Bytes()), "image/jpeg"); err != nil {
		return "", fmt.Errorf("upload thumb: %w", err)
	}

	return thumbKey, nil
}

func claimNextJob(ctx context.Context, db *sqlx.DB, src jobSource) (*imageJob, bool, error) {
	// PDF uploads are left alone; only raster images get thumbnails
	var j imageJob
	query := fmt.Sprintf(`
		SELECT id, %[1]s AS key
		FROM %[2]s
		WHERE %[1]s IS NOT NULL
		  AND %[1]s NOT LIKE '%%.pdf'
		  AND %[3]s IS NULL
		  AND %[4]s < $1
		ORDER BY updated_at ASC
		LIMIT 1
	`, src.keyColumn, src.table, src.thumbCol, src.attemptCol)
	err := db.GetContext(ctx, &j, query, maxAttempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	claim := fmt.Sprintf(`
		UPDATE %[1]s
		SET %[2]s = %[2]s + 1,
		    %[3]s = NULL
		WHERE id = $1
		  AND %[4]s IS NULL
		  AND %[2]s < $2
	`, src.table, src.attemptCol, src.errorCol, src.thumbCol)
	res, err := db.ExecContext(ctx, claim, j.ID, maxAttempts)
	if err != nil {
		return nil, false, err
	}

	aff, _ := res.RowsAffected()
	if aff == 0 {
		return nil, false, nil
	}

	return &j, true, nil
}

func markDone(ctx context.Context, db *sqlx.DB, src jobSource, id, thumbKey string) error {
	query := fmt.Sprintf(`
		UPDATE %[1]s
		SET %[2]s = $2,
		    %[3]s = NULL
		WHERE id = $1
	`, src.table, src.thumbCol, src.errorCol)
	_, err := db.ExecContext(ctx, query, id, thumbKey)
	return err
}

func markFailed(ctx context.Context, db *sqlx.DB, src jobSource, id string, msg string) error {
	// attempts already incremented in claim
	if len(msg) > 2000 {
		msg = msg[:2000]
	}
	query := fmt.Sprintf(`
		UPDATE %[1]s
		SET %[2]s = $2
		WHERE id = $1
	`, src.table, src.errorCol)
	_, err := db.ExecContext(ctx, query, id, msg)
	return err
}

func subscribeWakeups(ctx context.Context, rdb *redis.Client, wake chan<- struct{}) {
	sub := rdb.Subscribe(ctx, booking.ProofSubmittedChannel)
	defer func() { _ = sub.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Channel():
			// non-blocking wake-up
			select {
			case wake <- struct{}{}:
			default:
			}
		}
	}
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.UseLocalStorage() {
		log.Warn().Msg("R2 credentials not configured, using local storage")
		return storage.NewLocalStorage(cfg.LocalStoragePath, "http://localhost:"+cfg.Port+"/uploads")
	}
	return storage.NewR2Storage(storage.R2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		AccessKeySecret: cfg.R2AccessKeySecret,
		BucketName:      cfg.R2BucketName,
		PublicURL:       cfg.R2PublicURL,
	})
}
