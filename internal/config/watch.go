package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config at path whenever it is written and passes the
// result to onChange. A file that fails to load or validate is reported as
// an error and the watch continues. The directory is watched so editors
// that save by rename are seen too. Call the returned function to stop.
func Watch(path string, onChange func(*Config, error)) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}

	clean := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(clean)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching config directory: %w", err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != clean {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				onChange(LoadFrom(clean))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				onChange(nil, fmt.Errorf("config watcher: %w", err))
			}
		}
	}()

	return watcher.Close, nil
}
