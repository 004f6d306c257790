package dedup

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeClock is an adjustable time source.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestCache() (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewWithClock(clock.Now), clock
}

func TestSeenWithinWindow(t *testing.T) {
	cache, clock := newTestCache()

	if cache.Seen("http://x") {
		t.Error("expected unseen key before marking")
	}

	cache.MarkSeen("http://x")

	tests := []struct {
		name    string
		advance time.Duration
		want    bool
	}{
		{name: "immediately after marking", advance: 0, want: true},
		{name: "ten seconds later", advance: 10 * time.Second, want: true},
		{name: "just inside the window", advance: 289 * time.Second, want: true},
		{name: "past the window", advance: 2 * time.Second, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.advance(tt.advance)
			if diff := cmp.Diff(tt.want, cache.Seen("http://x")); diff != "" {
				t.Errorf("Seen mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarkSeenOverwritesStamp(t *testing.T) {
	cache, clock := newTestCache()

	cache.MarkSeen("http://x")
	clock.advance(200 * time.Second)
	cache.MarkSeen("http://x")
	clock.advance(200 * time.Second)

	// 400s after the first mark but only 200s after the second.
	if !cache.Seen("http://x") {
		t.Error("expected key to be seen after the stamp was refreshed")
	}
}

func TestEvictExpired(t *testing.T) {
	cache, clock := newTestCache()

	cache.MarkSeen("http://old")
	clock.advance(100 * time.Second)
	cache.MarkSeen("http://fresh")
	clock.advance(250 * time.Second)

	cache.EvictExpired()

	if diff := cmp.Diff(1, cache.Len()); diff != "" {
		t.Errorf("entry count mismatch (-want +got):\n%s", diff)
	}
	if cache.Seen("http://old") {
		t.Error("expected old entry to be evicted")
	}
	if !cache.Seen("http://fresh") {
		t.Error("expected fresh entry to survive eviction")
	}
}

func TestSeparateKeysIndependent(t *testing.T) {
	cache, _ := newTestCache()

	cache.MarkSeen("http://a")
	if cache.Seen("http://b") {
		t.Error("marking one key must not mark another")
	}
}
