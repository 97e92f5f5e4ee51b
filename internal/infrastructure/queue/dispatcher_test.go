package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuslink/association-api/internal/core/domain"
)

type captureRepo struct {
	mu      sync.Mutex
	entries []*domain.MembershipActivity
}

func (r *captureRepo) Insert(_ context.Context, entry *domain.MembershipActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *captureRepo) FindByClub(_ context.Context, clubID string, limit int) ([]*domain.MembershipActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.MembershipActivity
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].ClubID == clubID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *captureRepo) snapshot() []*domain.MembershipActivity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.MembershipActivity(nil), r.entries...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestDispatcher_PersistsEntries(t *testing.T) {
	repo := &captureRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.MembershipActivity{ClubID: "club_1", UserID: "user_1", Action: domain.ActionJoined})
	d.Record(domain.MembershipActivity{ClubID: "club_2", UserID: "user_2", Action: domain.ActionJoined})

	waitFor(t, func() bool { return len(repo.snapshot()) == 2 })
}

func TestDispatcher_PerClubOrdering(t *testing.T) {
	repo := &captureRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const n = 20
	for i := 0; i < n; i++ {
		d.Record(domain.MembershipActivity{
			ClubID: "club_1",
			UserID: fmt.Sprintf("user_%d", i),
			Action: domain.ActionJoined,
		})
	}
	waitFor(t, func() bool { return len(repo.snapshot()) == n })

	// All entries for one club land on one worker, so insert order must
	// match submission order.
	for i, entry := range repo.snapshot() {
		if want := fmt.Sprintf("user_%d", i); entry.UserID != want {
			t.Fatalf("entry %d out of order: got %s, want %s", i, entry.UserID, want)
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, &captureRepo{}, zerolog.Nop())
	first := d.shardIndex("club_42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("club_42"); got != first {
			t.Fatalf("shard index changed between calls: %d vs %d", first, got)
		}
	}
}
