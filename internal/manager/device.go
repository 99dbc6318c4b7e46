package manager

import "sync"

// sharedDevice reference-counts backends that share one process-wide output
// device. The device is resumed when the first user acquires it and suspended
// when the last one releases it, so swapping a backend for another instance
// of itself keeps the output running.
type sharedDevice struct {
	mu      sync.Mutex
	users   int
	resume  func() error
	suspend func() error
}

func (d *sharedDevice) acquire() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.users == 0 {
		if err := d.resume(); err != nil {
			return err
		}
	}
	d.users++
	return nil
}

func (d *sharedDevice) release() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.users == 0 {
		return nil
	}
	d.users--
	if d.users > 0 {
		return nil
	}
	return d.suspend()
}
