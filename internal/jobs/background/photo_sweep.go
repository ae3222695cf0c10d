package background

import (
	"context"
	"log"
	"strings"
	"time"

	"homestock/internal/repositories"
	"homestock/internal/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// PhotoSweeper removes stored photos whose item row no longer exists.
// Deleting an item is a plain row delete; the object is reclaimed here,
// off the request path.
type PhotoSweeper struct {
	scheduler   gocron.Scheduler
	itemRepo    repositories.ItemRepository
	minioSvc    services.MinioService
	photoBucket string
}

func NewPhotoSweeper(itemRepo repositories.ItemRepository, minioSvc services.MinioService, photoBucket string) (*PhotoSweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	ps := &PhotoSweeper{
		scheduler:   scheduler,
		itemRepo:    itemRepo,
		minioSvc:    minioSvc,
		photoBucket: photoBucket,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(ps.sweep, context.Background()),
		gocron.WithName("orphaned-photo-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return ps, nil
}

func (ps *PhotoSweeper) Start() {
	log.Printf("Starting background photo sweeper")
	ps.scheduler.Start()
}

func (ps *PhotoSweeper) Stop() error {
	log.Printf("Stopping background photo sweeper")
	return ps.scheduler.Shutdown()
}

// sweep walks the photo bucket and removes objects whose item is gone.
// Object keys look like items/<householdID>/<itemID>/<filename>.
func (ps *PhotoSweeper) sweep(ctx context.Context) {
	keys, err := ps.minioSvc.ListObjectKeys(ctx, ps.photoBucket, "items/")
	if err != nil {
		log.Printf("ERROR: photo sweep could not list objects: %v", err)
		return
	}

	removed := 0
	for _, key := range keys {
		parts := strings.Split(key, "/")
		if len(parts) < 4 {
			continue
		}
		itemID, err := uuid.Parse(parts[2])
		if err != nil {
			continue
		}

		exists, err := ps.itemRepo.Exists(ctx, itemID)
		if err != nil {
			log.Printf("ERROR: photo sweep existence check failed for %s: %v", itemID, err)
			continue
		}
		if exists {
			continue
		}

		if err := ps.minioSvc.RemoveObject(ctx, ps.photoBucket, key); err != nil {
			log.Printf("ERROR: photo sweep could not remove %s: %v", key, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("Photo sweep removed %d orphaned object(s)", removed)
	}
}
