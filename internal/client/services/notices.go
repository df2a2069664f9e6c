package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/personadesk/internal/common"
)

const storageFullMessage = "Storage full. Some data could not be saved; free space by deleting old profiles."

// Notices collects non-fatal warnings until the UI shows and dismisses them.
type Notices struct {
	mu    sync.Mutex
	items []string
}

func NewNotices() *Notices {
	return &Notices{}
}

func (n *Notices) Push(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, m := range n.items {
		if m == msg {
			return
		}
	}
	n.items = append(n.items, msg)
}

// Drain returns pending warnings oldest first and dismisses them.
func (n *Notices) Drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.items
	n.items = nil
	return out
}

// StorageAlert is a storage.AlertFunc that turns failed key-value writes
// into a warning.
func (n *Notices) StorageAlert(_ context.Context, _ string, err error) {
	if errors.Is(err, common.ErrStorageQuota) {
		n.Push(storageFullMessage)
		return
	}
	n.Push("Some data could not be saved.")
}
