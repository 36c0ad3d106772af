package upload

import (
	"context"
	"encoding/json"
	"time"

	"github.com/caritas-cda/rawload/internal/logging"
	"github.com/caritas-cda/rawload/internal/s3path"
	"github.com/caritas-cda/rawload/internal/storage"
)

// Marker is the body of a _SUCCESS object. Downstream promotion treats its
// presence as the signal that a (source, table) partition has fully landed.
type Marker struct {
	UploadedAt string `json:"uploaded_at"`
	FileCount  int    `json:"file_count"`
	Status     string `json:"status"`
}

// Publisher writes one completion marker per (source, table) group.
type Publisher struct {
	store   storage.ObjectStore
	log     logging.Logger
	client  string
	runDate string
	now     func() time.Time
}

func NewPublisher(store storage.ObjectStore, log logging.Logger, client, runDate string) *Publisher {
	return &Publisher{store: store, log: log, client: client, runDate: runDate, now: time.Now}
}

// Publish writes the group's _SUCCESS marker. fileCount is the number of
// files presented for the group, not only the successful ones. The caller
// must not invoke this before every file of the group has reached a
// terminal outcome.
func (p *Publisher) Publish(ctx context.Context, source, table string, fileCount int) error {
	key := s3path.Marker(p.client, source, table, p.runDate)

	body, err := json.Marshal(Marker{
		UploadedAt: p.now().UTC().Format(time.RFC3339),
		FileCount:  fileCount,
		Status:     "complete",
	})
	if err != nil {
		return err
	}

	if err := p.store.PutJSON(ctx, key, body); err != nil {
		p.log.Error(ctx, "marker write failed", "key", key, "error", err.Error())
		return err
	}

	p.log.Info(ctx, "marker written", "key", key, "file_count", fileCount)
	return nil
}
