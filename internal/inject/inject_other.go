//go:build !windows

package inject

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"
)

// uinput devices are not visible to the compositor until udev has caught up.
const linuxSettle = 2 * time.Second

type keyBonding struct {
	mu      sync.Mutex
	kb      keybd_event.KeyBonding
	readyAt time.Time
}

// New returns an injector backed by github.com/micmonay/keybd_event. On
// Linux it needs write access to /dev/uinput.
func New() (Injector, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("keybd_event: %w", err)
	}
	kb.SetKeys(keybd_event.VK_V)
	kb.HasCTRL(true)
	k := &keyBonding{kb: kb, readyAt: time.Now()}
	if runtime.GOOS == "linux" {
		k.readyAt = k.readyAt.Add(linuxSettle)
	}
	return k, nil
}

func (k *keyBonding) SendPasteChord() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if wait := time.Until(k.readyAt); wait > 0 {
		time.Sleep(wait)
	}
	if err := k.kb.Launching(); err != nil {
		return fmt.Errorf("send ctrl+v: %w", err)
	}
	return nil
}
