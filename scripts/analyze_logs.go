package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"
)

type LogStats struct {
	TotalErrors      int
	OrdersPlaced     int
	OrdersPaid       int
	WebhookCalls     int
	WebhookRejected  int
	WatcherFailures  int
	StatusChecks     int
	FailedRequests   int
	OrderActivities  map[string]int
	ErrorPatterns    map[string]int
}

func main() {
	today := time.Now().Format("2006-01-02")
	logDir := "./logs"

	stats := &LogStats{
		OrderActivities: make(map[string]int),
		ErrorPatterns:   make(map[string]int),
	}

	analyzeErrorLogs(filepath.Join(logDir, fmt.Sprintf("error-%s.log", today)), stats)
	analyzeInfoLogs(filepath.Join(logDir, fmt.Sprintf("info-%s.log", today)), stats)

	printReport(stats)
}

func analyzeErrorLogs(path string, stats *LogStats) {
	file, err := os.Open(path)
	if err != nil {
		fmt.Printf("Could not open error log: %v\n", err)
		return
	}
	defer file.Close()

	webhookSecret := regexp.MustCompile(`bad or missing secret`)
	webhookAmount := regexp.MustCompile(`amount mismatch for order (\S+)`)
	watcherFail := regexp.MustCompile(`[Ff]ailed to fetch order`)
	requestFail := regexp.MustCompile(`Status: [45]\d\d`)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		switch {
		case webhookSecret.MatchString(line):
			stats.WebhookRejected++
		case webhookAmount.MatchString(line):
			stats.WebhookRejected++
			if m := webhookAmount.FindStringSubmatch(line); len(m) > 1 {
				stats.OrderActivities[m[1]]++
			}
		case watcherFail.MatchString(line):
			stats.WatcherFailures++
		case requestFail.MatchString(line):
			stats.FailedRequests++
		default:
			stats.ErrorPatterns[firstWords(line, 6)]++
		}
	}
}

func analyzeInfoLogs(path string, stats *LogStats) {
	file, err := os.Open(path)
	if err != nil {
		fmt.Printf("Could not open info log: %v\n", err)
		return
	}
	defer file.Close()

	placed := regexp.MustCompile(`Created order (\S+)`)
	paid := regexp.MustCompile(`Order (\S+) marked paid`)
	webhook := regexp.MustCompile(`BankTransferWebhook called`)
	status := regexp.MustCompile(`/status - Status: 200`)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if m := placed.FindStringSubmatch(line); m != nil {
			stats.OrdersPlaced++
			stats.OrderActivities[m[1]]++
		}
		if m := paid.FindStringSubmatch(line); m != nil {
			stats.OrdersPaid++
			stats.OrderActivities[m[1]]++
		}
		if webhook.MatchString(line) {
			stats.WebhookCalls++
		}
		if status.MatchString(line) {
			stats.StatusChecks++
		}
	}
}

func firstWords(line string, n int) string {
	words := regexp.MustCompile(`\s+`).Split(line, n+1)
	if len(words) > n {
		words = words[:n]
	}
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}

func printReport(stats *LogStats) {
	fmt.Println("=== ShopSphere Payment Log Analysis ===")
	fmt.Printf("Orders placed:        %d\n", stats.OrdersPlaced)
	fmt.Printf("Orders paid:          %d\n", stats.OrdersPaid)
	fmt.Printf("Webhook calls:        %d\n", stats.WebhookCalls)
	fmt.Printf("Webhook rejections:   %d\n", stats.WebhookRejected)
	fmt.Printf("Watcher poll errors:  %d\n", stats.WatcherFailures)
	fmt.Printf("Status checks served: %d\n", stats.StatusChecks)
	fmt.Printf("Failed requests:      %d\n", stats.FailedRequests)
	fmt.Printf("Total errors:         %d\n", stats.TotalErrors)

	if len(stats.OrderActivities) > 0 {
		fmt.Println("\nMost active orders:")
		type kv struct {
			ID    string
			Count int
		}
		var sorted []kv
		for id, count := range stats.OrderActivities {
			sorted = append(sorted, kv{id, count})
		}
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
		for i, e := range sorted {
			if i >= 10 {
				break
			}
			fmt.Printf("  %s: %d events\n", e.ID, e.Count)
		}
	}

	if len(stats.ErrorPatterns) > 0 {
		fmt.Println("\nOther error patterns:")
		for pattern, count := range stats.ErrorPatterns {
			fmt.Printf("  %dx %s\n", count, pattern)
		}
	}
}
