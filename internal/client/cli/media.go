package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/vacayhq/vacay/internal/client/export"
	"github.com/vacayhq/vacay/internal/client/upload"
)

// Upload reads the given files from disk and runs them through the upload
// pipeline against the current album. Per-file progress is rendered by the
// tracker callback; the final result is summarized afterwards.
func (a *App) Upload(ctx context.Context, paths []string) error {
	if a.currentAlbum == nil {
		fmt.Println("No album opened. Use 'open <album-id>' first.")
		return nil
	}

	var sources []upload.Source
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("error reading %s: %s", path, err.Error())
			continue
		}
		// the content type is derived from the extension during validation
		sources = append(sources, upload.Source{
			Name: filepath.Base(path),
			Data: data,
		})
	}

	result, err := a.uploader.Run(ctx, a.currentAlbum.ID, sources)
	if err != nil {
		log.Printf("upload failed: %s", err.Error())
		return err
	}

	fmt.Printf("Uploaded %d, rejected %d, failed %d\n",
		len(result.Uploaded), len(result.Rejected), len(result.Failed))
	return nil
}

// Media lists the media items of the current album.
func (a *App) Media(ctx context.Context) error {
	if a.currentAlbum == nil {
		fmt.Println("No album opened. Use 'open <album-id>' first.")
		return nil
	}

	items, err := a.api.ListMedia(ctx, a.currentAlbum.ID)
	if err != nil {
		log.Printf("error listing media: %s", err.Error())
		return err
	}

	if len(items) == 0 {
		fmt.Println("Album is empty. Use 'upload <file>' to add photos.")
		return nil
	}

	for _, m := range items {
		fmt.Printf("%s  %-30s %-12s %d bytes\n", m.ID, m.OriginalName, m.MimeType, m.SizeBytes)
	}
	return nil
}

// DeleteMedia removes one media item by ID.
func (a *App) DeleteMedia(ctx context.Context, mediaID string) error {
	if err := a.api.DeleteMedia(ctx, mediaID); err != nil {
		log.Printf("error deleting media: %s", err.Error())
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

// SaveAll downloads every item of the current album into the configured
// export directory, one file at a time.
func (a *App) SaveAll(ctx context.Context) error {
	if a.currentAlbum == nil {
		fmt.Println("No album opened. Use 'open <album-id>' first.")
		return nil
	}

	items, err := a.api.ListMedia(ctx, a.currentAlbum.ID)
	if err != nil {
		log.Printf("error listing media: %s", err.Error())
		return err
	}

	saver, err := newDirSaver(a.config.ExportDir)
	if err != nil {
		log.Printf("error preparing export directory: %s", err.Error())
		return err
	}

	exporter := export.NewExporter(a.api, saver, nil, stdoutNotifier{}, hostProfile())
	summary := exporter.Run(ctx, a.currentAlbum.Title, items)

	fmt.Printf("Saved %d of %d items to %s\n", summary.Succeeded, summary.Total, a.config.ExportDir)
	return nil
}
