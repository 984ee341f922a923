// Command feedwatch is a terminal pager over the wallpaper feed endpoint.
//
// Usage:
//
//	feedwatch -endpoint http://localhost:8080/feed
//	feedwatch -endpoint http://localhost:8080/feed -category nature -sort trending
//
// The first page is printed immediately. Press Enter to load the next page,
// r to rerun the query from the top, q (or Ctrl-D) to quit.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"wallfeed/pkg/feedclient"
)

// item mirrors one feed entry as served by the feed endpoint.
type item struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Category     string `json:"category"`
	CategorySlug string `json:"categorySlug"`
	ImageURL     string `json:"imageUrl"`
	IsPremium    bool   `json:"isPremium"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Downloads    int64  `json:"downloads"`
	Views        int64  `json:"views"`
}

func main() {
	var (
		endpoint = flag.String("endpoint", "http://localhost:8080/feed", "feed endpoint URL")
		search   = flag.String("search", "", "free-text search term")
		category = flag.String("category", "", "category slug filter")
		sort     = flag.String("sort", "newest", "sort order: newest, popular, trending or random")
		limit    = flag.Int("limit", 24, "page size")
		premium  = flag.Bool("premium", false, "premium wallpapers only")
		video    = flag.Bool("video", false, "live (video) wallpapers only")
		timeout  = flag.Duration("timeout", 15*time.Second, "per-page request timeout")
	)
	flag.Parse()

	source, err := feedclient.NewHTTPSource[item](feedclient.HTTPSourceConfig{
		Endpoint:  *endpoint,
		Breaker:   feedclient.NewBreaker("feedwatch"),
		UserAgent: "feedwatch/1.0",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// OnChange runs on the controller's goroutine; hand snapshots to the
	// render loop through a channel. Intermediate snapshots may be dropped,
	// only the latest one matters for rendering.
	snapshots := make(chan feedclient.Snapshot[item], 16)
	ctrl := feedclient.New(source, func(it item) string {
		return fmt.Sprintf("%d", it.ID)
	}, feedclient.Config[item]{
		DefaultLimit:   *limit,
		RequestTimeout: *timeout,
		OnChange: func(s feedclient.Snapshot[item]) {
			select {
			case snapshots <- s:
			default:
			}
		},
	})
	defer ctrl.Close()

	query := feedclient.Query{
		Search:      *search,
		Category:    *category,
		PremiumOnly: *premium,
		VideoOnly:   *video,
		Sort:        *sort,
		Limit:       *limit,
	}
	ctrl.SetQuery(query)

	printed := 0
	stdin := bufio.NewScanner(os.Stdin)

	for {
		snap, ok := awaitSettled(snapshots)
		if !ok {
			return
		}

		if snap.Err != nil {
			fmt.Fprintf(os.Stderr, "fetch failed: %v (press Enter to retry)\n", snap.Err)
		} else {
			if len(snap.Items) < printed {
				// 新しいクエリセッションが始まった
				printed = 0
			}
			for _, it := range snap.Items[printed:] {
				printItem(it)
			}
			printed = len(snap.Items)

			if !snap.HasMore {
				fmt.Printf("-- end of feed (%d of %d) --\n", printed, snap.TotalCount)
			} else {
				fmt.Printf("-- %d of %d, Enter for more --\n", printed, snap.TotalCount)
			}
		}

		if !stdin.Scan() {
			return
		}
		switch strings.TrimSpace(stdin.Text()) {
		case "q":
			return
		case "r":
			printed = 0
			ctrl.SetQuery(query)
		default:
			if snap.Err == nil && !snap.HasMore {
				return
			}
			ctrl.LoadNext()
		}
	}
}

// awaitSettled drains snapshots until the controller is no longer loading,
// so each key press renders exactly one settled state.
func awaitSettled(snapshots <-chan feedclient.Snapshot[item]) (feedclient.Snapshot[item], bool) {
	for snap := range snapshots {
		if snap.Loading || snap.LoadingMore {
			continue
		}
		return snap, true
	}
	return feedclient.Snapshot[item]{}, false
}

func printItem(it item) {
	marks := ""
	if it.IsPremium {
		marks = " [premium]"
	}
	fmt.Printf("%6d  %-40s %-12s %dx%d  %d downloads%s\n",
		it.ID, truncate(it.Title, 40), it.CategorySlug, it.Width, it.Height, it.Downloads, marks)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
