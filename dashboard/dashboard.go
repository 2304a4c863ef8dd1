// Package dashboard computes the figures shown on the admin dashboard.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eringen/folio/content"
)

// Monthly output the progress bars measure against.
const (
	PostsPerMonthTarget = 4
	WorksPerMonthTarget = 3
	recentLimit         = 3
)

// PostLister lists every blog post.
type PostLister interface {
	List(ctx context.Context) ([]content.BlogPost, error)
}

// WorkLister lists every literary work.
type WorkLister interface {
	List(ctx context.Context) ([]content.LiteraryWork, error)
}

// MessageLister lists every contact message.
type MessageLister interface {
	List(ctx context.Context) ([]content.ContactMessage, error)
}

// Stats is the dashboard summary.
type Stats struct {
	TotalPosts     int
	PublishedPosts int
	DraftPosts     int
	TotalWorks     int
	PublishedWorks int
	ExternalWorks  int
	TotalMessages  int
	UnreadMessages int

	// AvgReadTime is the mean read time of published posts in minutes.
	AvgReadTime float64

	PostsThisMonth int
	WorksThisMonth int

	RecentPosts    []content.BlogPost
	RecentMessages []content.ContactMessage
}

// TotalContent counts posts and works together.
func (s Stats) TotalContent() int { return s.TotalPosts + s.TotalWorks }

// PostProgress is this month's posts as a percentage of the target, capped
// at 100.
func (s Stats) PostProgress() int { return progress(s.PostsThisMonth, PostsPerMonthTarget) }

// WorkProgress is this month's works as a percentage of the target, capped
// at 100.
func (s Stats) WorkProgress() int { return progress(s.WorksThisMonth, WorksPerMonthTarget) }

// AvgReadTimeLabel formats AvgReadTime for display.
func (s Stats) AvgReadTimeLabel() string {
	return fmt.Sprintf("%.1f min", s.AvgReadTime)
}

func progress(n, target int) int {
	return min(n*100/target, 100)
}

// Dashboard gathers Stats from the data-access services.
type Dashboard struct {
	posts    PostLister
	works    WorkLister
	messages MessageLister
	now      func() time.Time
}

// New returns a Dashboard reading from the given services.
func New(posts PostLister, works WorkLister, messages MessageLister) *Dashboard {
	return &Dashboard{posts: posts, works: works, messages: messages, now: time.Now}
}

// Stats loads all three lists concurrently and summarizes them. The first
// error from any source is returned.
func (d *Dashboard) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		RecentPosts:    []content.BlogPost{},
		RecentMessages: []content.ContactMessage{},
	}
	monthStart := startOfMonth(d.now())

	var mu sync.Mutex
	var wg sync.WaitGroup
	var firstErr error

	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	// Posts
	wg.Add(1)
	go func() {
		defer wg.Done()
		posts, err := d.posts.List(ctx)
		if err != nil {
			setErr(fmt.Errorf("list posts: %w", err))
			return
		}
		var published, drafts, thisMonth, minutes int
		var recent []content.BlogPost
		for _, p := range posts {
			switch p.Status {
			case content.StatusPublished:
				published++
				minutes += content.ReadTime(p.Content)
				if len(recent) < recentLimit {
					recent = append(recent, p)
				}
			case content.StatusDraft:
				drafts++
			}
			if !p.CreatedAt.Before(monthStart) {
				thisMonth++
			}
		}
		mu.Lock()
		stats.TotalPosts = len(posts)
		stats.PublishedPosts = published
		stats.DraftPosts = drafts
		stats.PostsThisMonth = thisMonth
		if published > 0 {
			stats.AvgReadTime = float64(minutes) / float64(published)
		}
		if recent != nil {
			stats.RecentPosts = recent
		}
		mu.Unlock()
	}()

	// Works
	wg.Add(1)
	go func() {
		defer wg.Done()
		works, err := d.works.List(ctx)
		if err != nil {
			setErr(fmt.Errorf("list works: %w", err))
			return
		}
		var published, external, thisMonth int
		for _, w := range works {
			if w.Status == content.StatusPublished {
				published++
			}
			if w.IsExternal() {
				external++
			}
			if !w.CreatedAt.Before(monthStart) {
				thisMonth++
			}
		}
		mu.Lock()
		stats.TotalWorks = len(works)
		stats.PublishedWorks = published
		stats.ExternalWorks = external
		stats.WorksThisMonth = thisMonth
		mu.Unlock()
	}()

	// Messages
	wg.Add(1)
	go func() {
		defer wg.Done()
		msgs, err := d.messages.List(ctx)
		if err != nil {
			setErr(fmt.Errorf("list messages: %w", err))
			return
		}
		mu.Lock()
		stats.TotalMessages = len(msgs)
		stats.UnreadMessages = content.UnreadCount(msgs)
		stats.RecentMessages = msgs[:min(recentLimit, len(msgs))]
		mu.Unlock()
	}()

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return stats, nil
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
