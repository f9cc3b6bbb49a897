// Package upload drives batches of files through the three-stage pipeline:
// authorize with the backend, transfer bytes directly to blob storage, then
// register the media record. Files fail independently; one bad file never
// aborts its siblings.
package upload

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vacayhq/vacay/internal/client/api"
	"github.com/vacayhq/vacay/internal/client/models"
	"github.com/vacayhq/vacay/internal/client/progress"
	"github.com/vacayhq/vacay/internal/mediatype"
)

// MaxFileBytes mirrors the server-side single-file cap. Oversized files are
// rejected before any network call.
const MaxFileBytes = 200 << 20

// ClearDelay is how long settled task state stays visible before the
// tracker is wiped and the listing refresh fires.
const ClearDelay = 2 * time.Second

// Stage percentages surfaced while a file moves through the pipeline.
const (
	percentStarted    = 10
	percentProcessing = 80
	percentComplete   = 100
)

// Source is one candidate file in a batch.
type Source struct {
	Name         string
	DeclaredType string
	Data         []byte
}

// Rejection describes a file excluded during pre-validation. Rejected files
// never become tasks and never reach the network.
type Rejection struct {
	Name   string
	Reason string
}

// Result summarizes a finished batch.
type Result struct {
	Uploaded []models.Media
	Rejected []Rejection
	Failed   []string
}

// Backend is the slice of the API surface the orchestrator needs. The full
// api.Client satisfies it.
type Backend interface {
	AuthorizeUpload(ctx context.Context, albumID, filename, contentType string, size int64) (*models.UploadGrant, error)
	UploadBlob(ctx context.Context, uploadURL, contentType string, data []byte) error
	RegisterMedia(ctx context.Context, albumID string, p api.RegisterMediaParams) (*models.Media, error)
}

// Orchestrator runs upload batches against one album.
type Orchestrator struct {
	api         Backend
	tracker     *progress.Tracker
	concurrency int

	clearDelay time.Duration
	sleep      func(ctx context.Context, d time.Duration)

	// onSettled fires after the post-batch clear so the caller can refresh
	// its media listing.
	onSettled func()

	// onRejected fires during pre-validation, once per excluded file,
	// before any upload starts.
	onRejected func(r Rejection)
}

func NewOrchestrator(client Backend, tracker *progress.Tracker, concurrency int) *Orchestrator {
	return &Orchestrator{
		api:         client,
		tracker:     tracker,
		concurrency: concurrency,
		clearDelay:  ClearDelay,
		sleep:       sleepCtx,
	}
}

// OnSettled registers the post-batch refresh callback.
func (o *Orchestrator) OnSettled(fn func()) { o.onSettled = fn }

// OnRejected registers a callback that surfaces pre-validation rejections
// to the user as they happen.
func (o *Orchestrator) OnRejected(fn func(r Rejection)) { o.onRejected = fn }

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

type validated struct {
	taskID string
	source Source
	mime   string
}

// Run uploads a batch into albumID. Every file is classified and size-checked
// up front; tasks are created only for files that pass. Valid files upload
// concurrently, bounded by the configured concurrency. Run blocks until the
// batch settles, the task state is cleared, and the refresh callback fires.
func (o *Orchestrator) Run(ctx context.Context, albumID string, files []Source) (*Result, error) {
	result := &Result{}

	reject := func(name, reason string) {
		r := Rejection{Name: name, Reason: reason}
		result.Rejected = append(result.Rejected, r)
		if o.onRejected != nil {
			o.onRejected(r)
		}
	}

	var valid []validated
	for _, f := range files {
		res := mediatype.Classify(f.Name, f.DeclaredType)
		if !res.Valid {
			reject(f.Name, "unsupported file type")
			continue
		}
		if int64(len(f.Data)) > MaxFileBytes {
			reject(f.Name, "file exceeds 200 MiB")
			continue
		}
		valid = append(valid, validated{taskID: uuid.NewString(), source: f, mime: res.MIME})
	}

	if len(valid) == 0 {
		return result, nil
	}

	for _, v := range valid {
		o.tracker.Add(v.taskID, v.source.Name)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}

	for _, v := range valid {
		g.Go(func() error {
			media, err := o.uploadOne(gctx, albumID, v)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, v.source.Name)
			} else {
				result.Uploaded = append(result.Uploaded, *media)
			}
			// Per-file failures are recorded, never returned: returning an
			// error would cancel the group and abort sibling uploads.
			return nil
		})
	}
	_ = g.Wait()

	o.sleep(ctx, o.clearDelay)
	o.tracker.Clear()
	if o.onSettled != nil {
		o.onSettled()
	}

	return result, nil
}

func (o *Orchestrator) uploadOne(ctx context.Context, albumID string, v validated) (*models.Media, error) {
	o.tracker.Update(v.taskID, percentStarted, progress.StatusUploading)

	grant, err := o.api.AuthorizeUpload(ctx, albumID, v.source.Name, v.mime, int64(len(v.source.Data)))
	if err != nil {
		return nil, o.fail(v.taskID, "upload not authorized", err)
	}

	if err := o.api.UploadBlob(ctx, grant.UploadURL, v.mime, v.source.Data); err != nil {
		return nil, o.fail(v.taskID, "transfer failed", err)
	}

	o.tracker.Update(v.taskID, percentProcessing, progress.StatusProcessing)

	media, err := o.api.RegisterMedia(ctx, albumID, api.RegisterMediaParams{
		StorageKey:   grant.StorageKey,
		OriginalName: v.source.Name,
		MimeType:     v.mime,
		SizeBytes:    int64(len(v.source.Data)),
	})
	if err != nil {
		return nil, o.fail(v.taskID, "registration failed", err)
	}

	o.tracker.Update(v.taskID, percentComplete, progress.StatusComplete)
	return media, nil
}

func (o *Orchestrator) fail(taskID, stage string, err error) error {
	msg := fmt.Sprintf("%s: %v", stage, err)
	o.tracker.Fail(taskID, msg)
	return err
}
