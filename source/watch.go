// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange every time the file at path is written or replaced, until
// ctx is done. The directory is watched instead of the file, because many editors
// save by renaming a new file over the old one. Relative paths are resolved against
// the base dir.
func (l *Loader) Watch(ctx context.Context, path string, onChange func()) error {
	path, err := filepath.Abs(l.resolve(path))
	if err != nil {
		return newUnavailableError(path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return newUnavailableError(path, err)
	}

	l.logger.Debug().Str("path", path).Msg("watching document")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != path {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				l.logger.Debug().Str("path", path).Str("op", event.Op.String()).Msg("document changed")
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			return fmt.Errorf("watching %s failed: %w", path, err)
		}
	}
}
