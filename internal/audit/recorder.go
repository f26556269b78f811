// Package audit appends immutable records of who did what to which
// resource, and serves queries over the trail.
//
// Writes are a best-effort side channel: Log never blocks a request and
// never reports failure to the caller. A full queue drops the entry with
// a warning; a failed insert is logged and swallowed. The triggering
// business operation succeeds or fails independently of audit durability.
package audit

import (
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
)

// DefaultQueueSize bounds the in-flight write queue when the config does
// not say otherwise.
const DefaultQueueSize = 1024

// Entry describes one action to record.
type Entry struct {
	UserID      *uint64
	Action      models.AuditAction
	EntityType  string
	EntityID    string
	OldValues   models.ValueMap
	NewValues   models.ValueMap
	IPAddress   string
	UserAgent   string
	RequestID   string
	Description string
}

// Recorder owns the background writer goroutine.
type Recorder struct {
	db      *gorm.DB
	queue   chan Entry
	done    chan struct{}
	wg      sync.WaitGroup
	stopped sync.Once
}

// NewRecorder creates a recorder and starts its background writer.
func NewRecorder(db *gorm.DB, queueSize int) *Recorder {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	r := &Recorder{
		db:    db,
		queue: make(chan Entry, queueSize),
		done:  make(chan struct{}),
	}

	r.wg.Add(1)
	go r.run()

	return r
}

// Log enqueues one entry, fire-and-forget. It never blocks and never
// returns an error.
func (r *Recorder) Log(entry Entry) {
	select {
	case <-r.done:
		log.Warn().Str("entity", entry.EntityType).Msg("audit recorder stopped, entry dropped")
		return
	default:
	}

	select {
	case r.queue <- entry:
	default:
		log.Warn().Str("entity", entry.EntityType).Msg("audit queue full, entry dropped")
	}
}

// Close drains the queue and stops the writer. Entries logged after Close
// are dropped.
func (r *Recorder) Close() {
	r.stopped.Do(func() {
		close(r.done)
	})

	r.wg.Wait()
}

func (r *Recorder) run() {
	defer r.wg.Done()

	for {
		select {
		case entry := <-r.queue:
			r.write(entry)
		case <-r.done:
			// drain whatever was queued before shutdown
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

// write performs the actual insert. Errors are swallowed after logging:
// audit failures stay invisible to the end user.
func (r *Recorder) write(entry Entry) {
	row := models.AuditLog{
		UserID:      entry.UserID,
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		OldValues:   entry.OldValues,
		NewValues:   entry.NewValues,
		IPAddress:   entry.IPAddress,
		UserAgent:   entry.UserAgent,
		RequestID:   entry.RequestID,
		Description: entry.Description,
	}

	if err := r.db.Create(&row).Error; err != nil {
		log.Error().Err(err).
			Str("action", string(entry.Action)).
			Str("entity", entry.EntityType).
			Msg("failed to write audit log")
	}
}
