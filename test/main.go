// Load driver for the intake pipeline API. Fires concurrent transcript
// submissions against a running instance and reports latency percentiles.
//
// Usage:
//
//	go run . -url http://localhost:8080 -n 200 -c 10
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type result struct {
	latency time.Duration
	status  int
	err     error
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the intake service")
	total := flag.Int("n", 100, "total number of requests")
	concurrency := flag.Int("c", 5, "concurrent workers")
	turns := flag.Int("turns", 12, "conversation turns per synthetic transcript")
	flag.Parse()

	if err := checkHealth(*baseURL); err != nil {
		fmt.Fprintf(os.Stderr, "health check failed: %v\n", err)
		os.Exit(1)
	}

	jobs := make(chan int)
	results := make(chan result, *total)

	var wg sync.WaitGroup
	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client := &http.Client{Timeout: 5 * time.Minute}
			for range jobs {
				results <- submitTranscript(client, *baseURL, *turns)
			}
		}()
	}

	start := time.Now()
	go func() {
		for i := 0; i < *total; i++ {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var latencies []time.Duration
	statusCounts := map[int]int{}
	errorCount := 0
	for r := range results {
		if r.err != nil {
			errorCount++
			fmt.Fprintf(os.Stderr, "request error: %v\n", r.err)
			continue
		}
		statusCounts[r.status]++
		latencies = append(latencies, r.latency)
	}
	elapsed := time.Since(start)

	fmt.Printf("requests: %d in %s (%.1f req/s)\n", *total, elapsed.Round(time.Millisecond), float64(*total)/elapsed.Seconds())
	fmt.Printf("transport errors: %d\n", errorCount)
	for status, count := range statusCounts {
		fmt.Printf("status %d: %d\n", status, count)
	}
	if len(latencies) > 0 {
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		fmt.Printf("latency p50: %s\n", percentile(latencies, 50).Round(time.Millisecond))
		fmt.Printf("latency p95: %s\n", percentile(latencies, 95).Round(time.Millisecond))
		fmt.Printf("latency p99: %s\n", percentile(latencies, 99).Round(time.Millisecond))
	}
}

func checkHealth(baseURL string) error {
	resp, err := http.Get(baseURL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func submitTranscript(client *http.Client, baseURL string, turns int) result {
	payload, err := json.Marshal(map[string]string{
		"transcript": syntheticTranscript(turns),
		"callId":     uuid.New().String(),
	})
	if err != nil {
		return result{err: err}
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/submit-transcript", bytes.NewReader(payload))
	if err != nil {
		return result{err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return result{err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return result{latency: time.Since(start), status: resp.StatusCode}
}

var patientLines = []string{
	"I've had a pounding headache since Monday.",
	"The pain gets worse when I stand up quickly.",
	"I've been taking ibuprofen but it barely helps.",
	"No, I haven't had a fever.",
	"I do feel a bit nauseous in the mornings.",
	"My mother had migraines, if that matters.",
	"I'm allergic to penicillin.",
	"I take lisinopril for blood pressure.",
}

func syntheticTranscript(turns int) string {
	var b strings.Builder
	b.WriteString("Agent: Hello, I'm here to collect some information before your visit. What brings you in today?\n")
	for i := 0; i < turns; i++ {
		fmt.Fprintf(&b, "Patient: %s\n", patientLines[i%len(patientLines)])
		fmt.Fprintf(&b, "Agent: I see, thank you. Can you tell me more?\n")
	}
	b.WriteString("Patient: That's everything I can think of.\n")
	return b.String()
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
