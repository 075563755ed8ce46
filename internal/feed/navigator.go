package feed

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
)

// Cause records what moved the visible index
type Cause int

const (
	CauseMount    Cause = iota
	CauseScroll         // reported by the visibility tracker
	CauseNavigate       // previous/next
	CauseJump           // explicit jump (search, home/end)
)

func (c Cause) String() string {
	switch c {
	case CauseScroll:
		return "scroll"
	case CauseNavigate:
		return "navigate"
	case CauseJump:
		return "jump"
	default:
		return "mount"
	}
}

// Transition is a single change of the visible index. Consumers see it in
// exactly one dispatch cycle.
type Transition struct {
	From  int
	To    int
	Cause Cause
}

// Navigator owns the authoritative visible index. Every out-of-range input is
// clamped, and every change is persisted under domain.KeyLastSeenIndex.
type Navigator struct {
	count  int
	index  int
	store  domain.KVStore
	logger *slog.Logger
}

// NewNavigator seeds the index from the store, defaulting to 0 when the key is
// absent or unparsable.
func NewNavigator(count int, store domain.KVStore, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = nopStore{}
	}
	n := &Navigator{count: count, store: store, logger: logger}

	saved, found := n.restore()
	n.index = n.clamp(saved)
	if found && n.index != saved {
		// Stored index no longer fits this catalog
		n.persist()
	}
	return n
}

func (n *Navigator) restore() (int, bool) {
	v, ok := n.store.Get(domain.KeyLastSeenIndex)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		n.logger.Debug("ignoring unparsable last seen index", "value", v)
		return 0, false
	}
	return i, true
}

func (n *Navigator) clamp(i int) int {
	if i > n.count-1 {
		i = n.count - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Index returns the visible index
func (n *Navigator) Index() int { return n.index }

// Len returns the number of items
func (n *Navigator) Len() int { return n.count }

// HasPrevious reports whether an item exists above the visible one
func (n *Navigator) HasPrevious() bool { return n.index > 0 }

// HasNext reports whether an item exists below the visible one
func (n *Navigator) HasNext() bool { return n.index < n.count-1 }

// ReportVisible accepts a tracker observation
func (n *Navigator) ReportVisible(i int) (Transition, bool) {
	return n.moveTo(i, CauseScroll)
}

// Previous moves one item up, stopping at the first
func (n *Navigator) Previous() (Transition, bool) {
	return n.moveTo(n.index-1, CauseNavigate)
}

// Next moves one item down, stopping at the last
func (n *Navigator) Next() (Transition, bool) {
	return n.moveTo(n.index+1, CauseNavigate)
}

// Jump moves directly to i
func (n *Navigator) Jump(i int) (Transition, bool) {
	return n.moveTo(i, CauseJump)
}

func (n *Navigator) moveTo(i int, cause Cause) (Transition, bool) {
	target := n.clamp(i)
	t := Transition{From: n.index, To: target, Cause: cause}
	if target == n.index {
		return t, false
	}
	n.index = target
	n.persist()
	return t, true
}

func (n *Navigator) persist() {
	if err := n.store.Set(domain.KeyLastSeenIndex, strconv.Itoa(n.index)); err != nil {
		n.logger.Warn("failed to persist last seen index", "index", n.index, "error", err)
	}
}

// nopStore misses every read and drops every write
type nopStore struct{}

func (nopStore) Get(string) (string, bool) { return "", false }
func (nopStore) Set(string, string) error  { return nil }
