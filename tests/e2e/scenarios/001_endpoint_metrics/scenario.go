package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"cdn-insights/internal/generators"
	"cdn-insights/internal/models"
	"cdn-insights/internal/shared/ulid"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	seed          = 20251228
	entriesPerRun = 500
)

var generatedAt = time.Date(2025, 12, 28, 18, 3, 0, 0, time.UTC)

// ### End - fixed configs

type batchToSend struct {
	scenario string
	round    int
	jsonData []byte
	entries  []*models.LogEntry
}

type analyzeResponse struct {
	statusCode int
	analysisID string
	endpoints  []models.EndpointMetric
}

// main runs the e2e scenario: 001_endpoint_metrics
//
// This scenario posts every generated traffic scenario to the analyze endpoint several times
// in parallel and checks the returned endpoint metrics.
//
// What it tests:
//   - Connectivity check via GET /api/test
//   - Batch analysis via POST /api/analyze for every built-in scenario
//   - Concurrent analysis calls do not share state
//   - Repeated analysis of the same batch returns identical metrics with fresh analysis IDs
//   - Malformed and invalid batches are rejected with 400
//
// Expected results:
//   - Every analysis returns 200 with an x-analysis-id header
//   - TotalRequests summed over endpoints equals the number of posted entries
//   - Cache counters never exceed TotalRequests and status/method/WAF maps sum to TotalRequests
//   - Percentiles are ordered (Median <= p95 <= p99) for every statistics block
//   - Top-K maps respect the default K values (10 ASNs, 5 origin IPs, 10 query strings)
func main() {
	// these configs can be changed to run the scenario
	baseURL := getEnv("BASE_URL", "http://localhost:8080") // Base URL of the cdn-insights API server
	rounds := getEnvInt("ROUNDS", 4)                       // Number of times each scenario batch is posted
	parallel := getEnvInt("PARALLEL", 4)                   // Number of concurrent analyze requests
	verbose := getEnvBool("VERBOSE", false)                // Print every response status

	fmt.Println("Starting e2e scenario: 001_endpoint_metrics")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("ROUNDS: %d\n", rounds)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("ENTRIES_PER_RUN: %d\n", entriesPerRun)
	fmt.Println()

	if err := checkConnectivity(baseURL); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: connectivity check failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Connectivity OK")

	// Generate one batch per scenario; every round posts the same bytes
	batchesToSend := make([]batchToSend, 0, len(generators.Scenarios())*rounds)
	for _, scenario := range generators.Scenarios() {
		batch := generators.NewGenerator(seed, generatedAt).Batch(scenario, entriesPerRun)
		jsonData, err := json.Marshal(batch)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to marshal scenario %s: %v\n", scenario.Name, err)
			os.Exit(1)
		}
		for round := 1; round <= rounds; round++ {
			batchesToSend = append(batchesToSend, batchToSend{
				scenario: scenario.Name,
				round:    round,
				jsonData: jsonData,
				entries:  batch.Logs,
			})
		}
	}
	fmt.Printf("Generated %d batches to send\n", len(batchesToSend))
	fmt.Println()

	// Create worker pool for parallel batch sending
	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errors []error
	var analyzedRequest int64
	firstResults := make(map[string][]models.EndpointMetric)
	analysisIDs := make(map[string]struct{})

	for _, batch := range batchesToSend {
		wg.Add(1)
		workerChan <- struct{}{} // Acquire worker slot

		go func(b batchToSend) {
			defer wg.Done()
			defer func() { <-workerChan }() // Release worker slot

			resp, err := sendBatch(baseURL, b.jsonData)
			if err == nil && resp.statusCode != http.StatusOK {
				err = fmt.Errorf("unexpected status %d", resp.statusCode)
			}
			if err == nil {
				err = checkInvariants(b.entries, resp.endpoints)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errors = append(errors, fmt.Errorf("%s round %d: %w", b.scenario, b.round, err))
				fmt.Fprintf(os.Stderr, "ERROR: %s round %d failed: %v\n", b.scenario, b.round, err)
				return
			}

			if _, dup := analysisIDs[resp.analysisID]; dup {
				errors = append(errors, fmt.Errorf("%s round %d: analysis id %q is not unique", b.scenario, b.round, resp.analysisID))
			}
			if _, err := ulid.Time(resp.analysisID); err != nil {
				errors = append(errors, fmt.Errorf("%s round %d: invalid analysis id %q: %w", b.scenario, b.round, resp.analysisID, err))
			}
			analysisIDs[resp.analysisID] = struct{}{}

			if first, ok := firstResults[b.scenario]; !ok {
				firstResults[b.scenario] = resp.endpoints
			} else if !reflect.DeepEqual(first, resp.endpoints) {
				errors = append(errors, fmt.Errorf("%s round %d: metrics differ from an earlier round", b.scenario, b.round))
			}
			atomic.AddInt64(&analyzedRequest, 1)

			if verbose {
				fmt.Printf("%s round %d completed (%d endpoints)\n", b.scenario, b.round, len(resp.endpoints))
			}
		}(batch)
	}

	// Wait for all batches to complete
	wg.Wait()

	// Rejected batches
	rejected := map[string]string{
		"malformed json":   `{"logs": [`,
		"missing metadata": `{"logs": []}`,
		"logs not array":   `{"logs": {}, "metadata": {"fileCount": 0, "totalEntries": 0, "timestamp": "2025-12-28T18:03:00Z"}}`,
	}
	for name, body := range rejected {
		resp, err := sendBatch(baseURL, []byte(body))
		if err != nil {
			errors = append(errors, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if resp.statusCode != http.StatusBadRequest {
			errors = append(errors, fmt.Errorf("%s: expected 400, got %d", name, resp.statusCode))
		}
	}

	fmt.Println()
	if len(errors) > 0 {
		for _, err := range errors {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		fmt.Fprintf(os.Stderr, "ERROR: %d checks failed\n", len(errors))
		os.Exit(1)
	}

	fmt.Println("=== Statistics ===")
	fmt.Printf("Analyzed request: %d\n", atomic.LoadInt64(&analyzedRequest))
	fmt.Printf("Rejected request: %d\n", len(rejected))
	for _, scenario := range generators.Scenarios() {
		fmt.Printf("%s: %d endpoints\n", scenario.Name, len(firstResults[scenario.Name]))
	}
	fmt.Println("Scenario completed successfully")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func checkConnectivity(baseURL string) error {
	resp, err := http.Get(baseURL + "/api/test")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode connectivity response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !body.Success {
		return fmt.Errorf("unexpected connectivity response (status %d)", resp.StatusCode)
	}
	return nil
}

func sendBatch(baseURL string, jsonData []byte) (*analyzeResponse, error) {
	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/analyze", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	out := &analyzeResponse{
		statusCode: resp.StatusCode,
		analysisID: resp.Header.Get("x-analysis-id"),
	}
	if resp.StatusCode != http.StatusOK {
		return out, nil
	}
	if err := json.Unmarshal(body, &out.endpoints); err != nil {
		return nil, fmt.Errorf("failed to decode metrics: %w", err)
	}
	return out, nil
}

func checkInvariants(entries []*models.LogEntry, endpoints []models.EndpointMetric) error {
	var total int64
	seen := make(map[string]struct{}, len(endpoints))

	for _, m := range endpoints {
		if _, dup := seen[m.EndpointURL]; dup {
			return fmt.Errorf("endpoint %q reported twice", m.EndpointURL)
		}
		seen[m.EndpointURL] = struct{}{}
		total += m.TotalRequests

		cached := m.CacheHits + m.CacheMisses + m.CacheExpires + m.CacheBypasses + m.CacheStale
		if cached > m.TotalRequests {
			return fmt.Errorf("%s: cache counters %d exceed requests %d", m.EndpointURL, cached, m.TotalRequests)
		}
		if sum := sumValues(m.StatusCodeDistribution); sum != m.TotalRequests {
			return fmt.Errorf("%s: status codes sum to %d, want %d", m.EndpointURL, sum, m.TotalRequests)
		}
		if sum := sumValues(m.MethodDistribution); sum != m.TotalRequests {
			return fmt.Errorf("%s: methods sum to %d, want %d", m.EndpointURL, sum, m.TotalRequests)
		}
		if sum := sumValues(m.WAFActions); sum != m.TotalRequests {
			return fmt.Errorf("%s: WAF actions sum to %d, want %d", m.EndpointURL, sum, m.TotalRequests)
		}

		for name, s := range map[string]models.Statistics{
			"OriginResponseTimes": m.OriginResponseTimes,
			"ByteAmounts":         m.ByteAmounts,
			"BotScores":           m.BotScores,
			"ThreatScores":        m.ThreatScores,
		} {
			if s.Median > s.NinetyFifthPercentile || s.NinetyFifthPercentile > s.NinetyNinthPercentile {
				return fmt.Errorf("%s: %s percentiles out of order: %+v", m.EndpointURL, name, s)
			}
		}

		if len(m.TopASNs) > 10 || len(m.OriginIPDistribution) > 5 || len(m.QueryParamImpact) > 10 || len(m.TopUserAgents) > 10 {
			return fmt.Errorf("%s: top-K bounds exceeded", m.EndpointURL)
		}
		for ip, s := range m.OriginIPDistribution {
			if s.Requests < 5 {
				return fmt.Errorf("%s: origin %s below request threshold", m.EndpointURL, ip)
			}
		}
		for query, s := range m.QueryParamImpact {
			if s.Requests < 5 || s.CacheHitRate < 0 || s.CacheHitRate > 1 {
				return fmt.Errorf("%s: query %q stats out of range: %+v", m.EndpointURL, query, s)
			}
		}
	}

	if total != int64(len(entries)) {
		return fmt.Errorf("requests sum to %d, want %d", total, len(entries))
	}
	return nil
}

func sumValues[K comparable](m map[K]int64) int64 {
	var sum int64
	for _, v := range m {
		sum += v
	}
	return sum
}
