package config

import (
	"path/filepath"

	"safesurf/agent/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config whenever the file at path is rewritten and calls
// onChange with the fresh value. The watcher lives until stop is closed.
func Watch(path string, onChange func(AppConfig), stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors replace files, which drops a watch
	// registered on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}
	abs, _ := filepath.Abs(path)

	go func() {
		defer watcher.Close()
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				evAbs, _ := filepath.Abs(ev.Name)
				if evAbs != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				logger.Infof("config changed, reloading: %s", path)
				onChange(Init(path))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Errorf("config watcher error: %v", err)
			case <-stop:
				return
			}
		}
	}()
	return nil
}
