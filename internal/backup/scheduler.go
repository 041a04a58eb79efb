package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/lab-scheduler/internal/infra/snapshot"
	"github.com/BruksfildServices01/lab-scheduler/internal/models"
)

const runTimeout = 30 * time.Second

// Source is the part of the repository a backup needs.
type Source interface {
	List(ctx context.Context) ([]models.Appointment, error)
}

// Job copies the whole collection, in the same format as the data file,
// to an Uploader.
type Job struct {
	src      Source
	uploader Uploader
	key      string
	log      *zap.Logger
}

func NewJob(src Source, uploader Uploader, key string, log *zap.Logger) *Job {
	return &Job{src: src, uploader: uploader, key: key, log: log.Named("backup")}
}

func (j *Job) Run(ctx context.Context) error {
	list, err := j.src.List(ctx)
	if err != nil {
		return fmt.Errorf("backup: list: %w", err)
	}

	body, err := snapshot.Encode(list)
	if err != nil {
		return fmt.Errorf("backup: encode: %w", err)
	}

	if err := j.uploader.Upload(ctx, j.key, body); err != nil {
		return fmt.Errorf("backup: upload %s: %w", j.key, err)
	}

	j.log.Info("backup uploaded",
		zap.String("key", j.key),
		zap.Int("records", len(list)),
		zap.Int("bytes", len(body)),
	)
	return nil
}

// Schedule registers the job on a new cron scheduler. The caller starts
// it and must call Stop on shutdown.
func Schedule(spec string, job *Job) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if err := job.Run(ctx); err != nil {
			job.log.Error("backup failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("backup: invalid schedule %q: %w", spec, err)
	}

	return c, nil
}
