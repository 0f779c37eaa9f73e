//go:build !linux

package watch

import (
	"context"
	"os"
	"sync"
	"time"
)

const pollInterval = 250 * time.Millisecond

type stamp struct {
	mod  time.Time
	size int64
}

// backend polls modification times on platforms without inotify.
type backend struct {
	mu    sync.Mutex
	files map[string]stamp
}

func (b *backend) init() error {
	b.files = make(map[string]stamp)
	return nil
}

func (b *backend) add(abs string) error {
	st, err := statFile(abs)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.files[abs] = st
	b.mu.Unlock()
	return nil
}

func (b *backend) run(ctx context.Context, changed func(string)) error {
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
		b.mu.Lock()
		for path, old := range b.files {
			st, err := statFile(path)
			if err != nil || st == old {
				continue
			}
			b.files[path] = st
			changed(path)
		}
		b.mu.Unlock()
	}
}

func (b *backend) close() error { return nil }

func statFile(path string) (stamp, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return stamp{}, err
	}
	return stamp{mod: fi.ModTime(), size: fi.Size()}, nil
}
