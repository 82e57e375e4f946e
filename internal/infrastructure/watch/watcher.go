// Package watch auto-uploads files dropped into a local directory.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/dmorenov/ragchat/internal/core/domain"
)

type Uploader interface {
	Upload(ctx context.Context, file domain.FileUpload) (*domain.Document, error)
}

type Watcher struct {
	watcher    *fsnotify.Watcher
	uploader   Uploader
	extensions []string
}

func New(uploader Uploader, extensions []string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if len(extensions) == 0 {
		extensions = []string{".txt", ".pdf", ".docx", ".odt"}
	}
	return &Watcher{
		watcher:    w,
		uploader:   uploader,
		extensions: extensions,
	}, nil
}

// Run blocks until ctx is done, uploading each newly created file with a
// watched extension.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	slog.Info("watching_directory", "dir", dir, "extensions", strings.Join(w.extensions, ","))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !w.isWatchedExtension(event.Name) {
				continue
			}
			w.uploadFile(ctx, event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch_error", "error", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) uploadFile(ctx context.Context, path string) {
	f, err := os.Open(path)
	if err != nil {
		slog.Warn("watch_open_failed", "path", path, "error", err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		slog.Warn("watch_stat_failed", "path", path, "error", err)
		return
	}

	doc, err := w.uploader.Upload(ctx, domain.FileUpload{
		Name: filepath.Base(path),
		Size: info.Size(),
		Data: f,
	})
	if err != nil {
		slog.Warn("watch_upload_failed", "path", path, "error", err)
		return
	}
	slog.Info("watch_uploaded", "path", path, "document_id", doc.ID, "chunks", doc.ChunkCount)
}

func (w *Watcher) isWatchedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
