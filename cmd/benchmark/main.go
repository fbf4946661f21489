package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/olgasafonova/growi-mcp-server/internal/growi"
)

// measureCachePerformance times a repeated page listing against a live wiki
func measureCachePerformance(client *growi.Client, token string) {
	ctx := context.Background()

	fmt.Println("=== Cache Performance Test ===")
	fmt.Println()

	fmt.Println("1. Page Listing Cache Test:")

	start := time.Now()
	outcome := client.ListPages(ctx, token)
	if !outcome.OK() {
		fmt.Printf("   Error: %s\n", outcome.Message())
		return
	}
	firstCall := time.Since(start)
	fmt.Printf("   First call (network):  %v (%d pages)\n", firstCall, len(outcome.Value()))

	start = time.Now()
	_ = client.ListPages(ctx, token)
	secondCall := time.Since(start)
	fmt.Printf("   Second call (cached):  %v\n", secondCall)
	if secondCall > 0 {
		fmt.Printf("   Speedup: %.0fx faster\n", float64(firstCall)/float64(secondCall))
	}
	fmt.Println()

	pages := outcome.Value()
	if len(pages) == 0 {
		fmt.Println("   No pages to fetch, skipping page read test")
		return
	}

	fmt.Println("2. Page Read Cache Test:")
	path := pages[0]

	start = time.Now()
	read := client.GetPageByPath(ctx, path, token)
	if !read.OK() {
		fmt.Printf("   Error: %s\n", read.Message())
		return
	}
	firstRead := time.Since(start)
	fmt.Printf("   First read of %s:  %v (%d bytes)\n", path, firstRead, len(read.Value()))

	start = time.Now()
	_ = client.GetPageByPath(ctx, path, token)
	secondRead := time.Since(start)
	fmt.Printf("   Second read (cached): %v\n", secondRead)
	fmt.Println()
}

// measureDeduplication fires concurrent identical requests and shows
// that only one of them reaches the network
func measureDeduplication(client *growi.Client, token string) {
	ctx := context.Background()

	fmt.Println("=== Request Deduplication Test ===")
	fmt.Println()

	const concurrent = 10

	fmt.Printf("3. %d concurrent identical listings:\n", concurrent)

	start := time.Now()
	var wg sync.WaitGroup
	for range concurrent {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = client.ListPages(ctx, token)
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	fmt.Printf("   Wall time for %d callers: %v\n", concurrent, elapsed)
	fmt.Println("   Identical in-flight requests share one upstream call,")
	fmt.Println("   so wall time tracks a single request, not ten.")
	fmt.Println()
}

// measureWriteInvalidation shows the read-after-write path: a write
// drops the cached listing, so the next read goes back to the network
func measureWriteInvalidation(client *growi.Client, token string) {
	ctx := context.Background()

	fmt.Println("=== Write Invalidation Test ===")
	fmt.Println()

	path := fmt.Sprintf("/benchmark/%d", time.Now().UnixNano())

	fmt.Printf("4. Create %s then re-list:\n", path)

	start := time.Now()
	created := client.CreateOrReplacePage(ctx, path, "benchmark page", token)
	if !created.OK() {
		fmt.Printf("   Error: %s\n", created.Message())
		return
	}
	fmt.Printf("   Create: %v (id %s)\n", time.Since(start), created.Value())

	start = time.Now()
	listing := client.ListPages(ctx, token)
	fmt.Printf("   Re-list (network, cache dropped): %v\n", time.Since(start))
	if listing.OK() {
		for _, p := range listing.Value() {
			if p == path {
				fmt.Println("   New page visible in listing")
				break
			}
		}
	}
	fmt.Println()
}

func main() {
	fmt.Println("Growi MCP Server - Performance Measurements")
	fmt.Println("============================================")
	fmt.Println()

	config, err := growi.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := growi.NewClient(config, growi.WithLogger(logger))
	defer client.Close()

	measureCachePerformance(client, config.APIToken)
	measureDeduplication(client, config.APIToken)
	if config.HasToken() {
		measureWriteInvalidation(client, config.APIToken)
	} else {
		fmt.Println("GROWI_API_TOKEN not set, skipping write invalidation test")
		fmt.Println()
	}

	fmt.Println("=== Summary ===")
	fmt.Println()
	fmt.Println("Key behaviors:")
	fmt.Println("• Caching: Repeated reads are served from memory within the TTL")
	fmt.Println("• Deduplication: Concurrent identical requests share one upstream call")
	fmt.Println("• Invalidation: A successful write drops cached pages and listings")
	fmt.Println("• Connection reuse: HTTP keep-alive and pooling reduce latency")
}
