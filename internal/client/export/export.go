// Package export saves an album's stored media to the invoking device. Items
// are processed strictly one at a time with deliberate inter-item delays:
// firing many save/share interactions concurrently is the failure mode this
// design avoids.
package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"time"

	_ "image/gif"
	_ "image/png"

	"github.com/vacayhq/vacay/internal/client/models"
	"github.com/vacayhq/vacay/internal/mediatype"
)

// Inter-item delays. The native share surface needs longer to settle than a
// plain download trigger.
const (
	ShareDelay    = 1500 * time.Millisecond
	DownloadDelay = 500 * time.Millisecond
	FollowupDelay = time.Second
)

const jpegQuality = 90

// Fetcher obtains the stored bytes behind a media item's retrieval URL.
type Fetcher interface {
	FetchBlob(ctx context.Context, url string) ([]byte, string, error)
}

// Saver persists one file to the device's durable storage (the download
// path).
type Saver interface {
	SaveFile(name, mime string, data []byte) error
}

// ShareSink is the platform's native share/save surface. CanShare reports
// whether the surface exists; Share may still decline individual files.
type ShareSink interface {
	CanShare() bool
	Share(name, mime string, data []byte) error
}

// Notifier receives user-visible progress and advisory messages.
type Notifier interface {
	Notify(msg string)
}

// Summary is the outcome of one export run.
type Summary struct {
	Total     int
	Succeeded int
}

// Exporter runs save-to-device batches.
type Exporter struct {
	fetch   Fetcher
	saver   Saver
	sink    ShareSink
	notify  Notifier
	profile DeviceProfile

	sleep func(ctx context.Context, d time.Duration)
}

// NewExporter builds an Exporter. sink may be nil when the platform has no
// share surface; every item then uses the download strategy.
func NewExporter(fetch Fetcher, saver Saver, sink ShareSink, notify Notifier, profile DeviceProfile) *Exporter {
	return &Exporter{
		fetch:   fetch,
		saver:   saver,
		sink:    sink,
		notify:  notify,
		profile: profile,
		sleep:   sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Run saves items in input order, one at a time. label seeds the generated
// filenames. Partial failure is not fatal: the run always visits every item
// and reports how many succeeded.
func (e *Exporter) Run(ctx context.Context, label string, items []models.Media) Summary {
	n := len(items)
	if n == 0 {
		e.notify.Notify("nothing to save")
		return Summary{}
	}

	label = sanitizeLabel(label)

	success := 0
	for i, item := range items {
		e.notify.Notify(fmt.Sprintf("saving item %d of %d", i+1, n))

		ok, usedShare := e.saveOne(ctx, label, i, item)
		if ok {
			success++
		}

		if i < n-1 {
			if usedShare {
				e.sleep(ctx, ShareDelay)
			} else {
				e.sleep(ctx, DownloadDelay)
			}
		}
	}

	e.notify.Notify(fmt.Sprintf("%d of %d processed", success, n))

	e.sleep(ctx, FollowupDelay)
	e.notify.Notify(e.followupMessage())

	return Summary{Total: n, Succeeded: success}
}

// saveOne never lets an error escape; any failure is converted into a false
// result for this item.
func (e *Exporter) saveOne(ctx context.Context, label string, index int, item models.Media) (ok bool, usedShare bool) {
	data, _, err := e.fetch.FetchBlob(ctx, item.BlobURL)
	if err != nil {
		return false, false
	}

	if e.normalizeToJPEG(item) {
		name := fmt.Sprintf("%s_%02d.jpg", label, index+1)
		encoded, err := reencodeJPEG(data)
		if err == nil {
			if e.canShare() {
				if e.sink.Share(name, "image/jpeg", encoded) == nil {
					return true, true
				}
				// Share surface declined; fall through to a plain save so
				// the item still lands on the device.
				if e.saver.SaveFile(name, "image/jpeg", encoded) == nil {
					return true, true
				}
				return false, true
			}
			// No share surface: the normalized JPEG still goes through the
			// download path.
			if e.saver.SaveFile(name, "image/jpeg", encoded) == nil {
				return true, false
			}
			return false, false
		}
		// Could not re-encode (e.g. webp): download the original bytes.
	}

	name := fmt.Sprintf("%s_%02d%s", label, index+1, mediatype.ExtensionFor(item.MimeType))
	if err := e.saver.SaveFile(name, item.MimeType, data); err != nil {
		return false, false
	}
	return true, false
}

// normalizeToJPEG reports whether the item gets raster normalization:
// images only, on iOS with the platform's embedded Safari engine.
func (e *Exporter) normalizeToJPEG(item models.Media) bool {
	return mediatype.IsImage(item.MimeType) &&
		e.profile.IsIOS &&
		e.profile.IsSafariEngine
}

func (e *Exporter) canShare() bool {
	return e.sink != nil && e.sink.CanShare()
}

func (e *Exporter) followupMessage() string {
	switch {
	case e.profile.IsIOS:
		return "saved images are in your Photos library; downloads are in Files"
	case e.profile.IsAndroid:
		return "check your Downloads folder or the notification shade for saved files"
	default:
		return "files were saved to your Downloads folder"
	}
}

// reencodeJPEG normalizes an image to one consistent encoding by decoding
// and re-encoding it in memory.
func reencodeJPEG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sanitizeLabel(label string) string {
	out := []rune(label)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			out[i] = '_'
		}
	}
	if len(out) == 0 {
		return "album"
	}
	return string(out)
}
