// Package activity records user activity as a best-effort side effect of
// mutations. A failed or dropped record never fails the triggering request.
package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mnuddindev/secondbrain/internal/models"
	"github.com/mnuddindev/secondbrain/internal/store"
	"github.com/mnuddindev/secondbrain/pkg/logger"
	"github.com/mnuddindev/secondbrain/pkg/utils"
)

const queueSize = 256

// Recorder appends Activity records through a bounded queue and a single
// worker, isolated from the caller's failure domain.
type Recorder struct {
	activities store.Collection[models.Activity]
	log        *logger.Logger
	queue      chan models.Activity
	quit       chan struct{}
	done       chan struct{}
}

func NewRecorder(activities store.Collection[models.Activity], log *logger.Logger) *Recorder {
	r := &Recorder{
		activities: activities,
		log:        log,
		queue:      make(chan models.Activity, queueSize),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go r.worker()
	return r
}

// Record enqueues an activity record. It never blocks: when the queue is full
// the record is dropped with a warning.
func (r *Recorder) Record(userID uuid.UUID, typ models.ActivityType, description string, resourceID uuid.UUID) {
	entry := models.Activity{
		UserID:      userID,
		Type:        typ,
		Description: description,
	}
	if resourceID != uuid.Nil {
		id := resourceID
		entry.ResourceID = &id
	}

	select {
	case r.queue <- entry:
	default:
		r.log.Warn(context.Background()).WithMeta(utils.Map{
			"type":    string(typ),
			"user_id": userID.String(),
		}).Logs("Activity queue full, dropping record")
	}
}

func (r *Recorder) worker() {
	defer close(r.done)
	for {
		select {
		case entry := <-r.queue:
			r.write(entry)
		case <-r.quit:
			for {
				select {
				case entry := <-r.queue:
					r.write(entry)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) write(entry models.Activity) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.activities.Insert(ctx, &entry); err != nil {
		r.log.Warn(ctx).WithMeta(utils.Map{
			"error":   err.Error(),
			"type":    string(entry.Type),
			"user_id": entry.UserID.String(),
		}).Logs("Activity logging failed")
	}
}

// Close drains pending records and stops the worker.
func (r *Recorder) Close() {
	close(r.quit)
	<-r.done
}
