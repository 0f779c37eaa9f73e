//go:build linux

package watch

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"
	"unsafe"

	"github.com/golang/glog"
	"golang.org/x/sys/unix"
)

// The parent directory is watched rather than the file itself, so editors
// that save by renaming a temp file over the original are still seen.
const dirMask = unix.IN_MODIFY | unix.IN_CLOSE_WRITE | unix.IN_MOVED_TO | unix.IN_CREATE

type backend struct {
	fd   int
	mu   sync.Mutex
	dirs map[int]string
	wds  map[string]int
}

func (b *backend) init() error {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return fmt.Errorf("inotify_init: %w", err)
	}
	b.fd = fd
	b.dirs = make(map[int]string)
	b.wds = make(map[string]int)
	return nil
}

func (b *backend) add(abs string) error {
	dir := filepath.Dir(abs)
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.wds[dir]; ok {
		return nil
	}
	wd, err := unix.InotifyAddWatch(b.fd, dir, dirMask)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	b.dirs[wd] = dir
	b.wds[dir] = wd
	return nil
}

func (b *backend) run(ctx context.Context, changed func(string)) error {
	buf := make([]byte, (unix.SizeofInotifyEvent+unix.NAME_MAX+1)*16)
	for {
		if ctx.Err() != nil {
			return nil
		}
		n, err := unix.Read(b.fd, buf)
		if err == unix.EAGAIN || err == unix.EINTR {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(50 * time.Millisecond):
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("read inotify events: %w", err)
		}

		for off := 0; off+unix.SizeofInotifyEvent <= n; {
			ev := (*unix.InotifyEvent)(unsafe.Pointer(&buf[off]))
			nameStart := off + unix.SizeofInotifyEvent
			name := string(bytes.TrimRight(buf[nameStart:nameStart+int(ev.Len)], "\x00"))
			off = nameStart + int(ev.Len)

			if ev.Mask&dirMask == 0 || name == "" {
				continue
			}
			b.mu.Lock()
			dir := b.dirs[int(ev.Wd)]
			b.mu.Unlock()
			if dir == "" {
				continue
			}
			path := filepath.Join(dir, name)
			glog.V(2).Infof("watch: event 0x%x on %s", ev.Mask, path)
			changed(path)
		}
	}
}

func (b *backend) close() error { return unix.Close(b.fd) }
