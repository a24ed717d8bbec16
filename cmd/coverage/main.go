// Command coverage sweeps every day of a year range through the chronos
// endpoint and reports which days fell back to a sentinel category.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// APIResponse matches the API response structure
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Bundle keeps only the fields the sweep inspects.
type Bundle struct {
	Planets map[string]string `json:"PLANETARY_POSITIONS"`
	Weton   map[string]any    `json:"WETON_JAVA"`
}

// Failure categories
const (
	CategoryRequest = "request"
	CategoryPlanets = "PLANETARY_POSITIONS"
	CategoryWeton   = "WETON_JAVA"
)

// TestResult holds the result for a single date
type TestResult struct {
	Date     string `json:"date"`
	Success  bool   `json:"success"`
	Category string `json:"category,omitempty"`
	Error    string `json:"error,omitempty"`
}

// CategoryStats tracks failures for one category
type CategoryStats struct {
	Category    string
	FailedDates []string
}

type YearStats struct {
	Year        int
	TotalDays   int
	SuccessDays int
	FailedDays  int
}

// Analysis holds the analyzed results
type Analysis struct {
	TotalDays    int
	TotalSuccess int
	TotalFailed  int
	ByCategory   map[string]*CategoryStats
	ByYear       map[int]*YearStats
}

type sweeper struct {
	client  *http.Client
	baseURL string
	apiKey  string
	clock   string
	limiter *rate.Limiter
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key sent as X-API-Key")
	startYear := flag.Int("start", 2024, "Start year")
	years := flag.Int("years", 1, "Number of years to test")
	clock := flag.String("time", "12:00", "Birth time used for every date")
	workers := flag.Int("workers", 4, "Concurrent requests")
	rps := flag.Float64("rps", 8, "Requests per second (stay under the server's RATE_LIMIT_RPS)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	endYear := *startYear + *years - 1

	fmt.Println("================================================================")
	fmt.Println("Chronos API - Sentinel Coverage Sweep")
	fmt.Println("================================================================")
	fmt.Printf("Base URL:    %s\n", *baseURL)
	fmt.Printf("Date Range:  %d-01-01 to %d-12-31 at %s\n", *startYear, endYear, *clock)
	fmt.Println()

	// Check if server is reachable
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	s := &sweeper{
		client:  client,
		baseURL: *baseURL,
		apiKey:  *apiKey,
		clock:   *clock,
		limiter: rate.NewLimiter(rate.Limit(*rps), 1),
	}

	results, err := s.sweep(context.Background(), *startYear, endYear, *workers)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	analysis := analyzeResults(results)
	printSummary(analysis, *startYear, endYear)
	printFailuresByCategory(analysis)

	if *outputFile != "" {
		saveResults(*outputFile, results)
	}

	// Exit with error code if there were failures
	if analysis.TotalFailed > 0 {
		os.Exit(1)
	}
}

// sweep tests every day from startYear through endYear. Results keep
// calendar order regardless of completion order.
func (s *sweeper) sweep(ctx context.Context, startYear, endYear, workers int) ([]TestResult, error) {
	start := time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, 12, 31, 0, 0, 0, 0, time.UTC)
	totalDays := int(end.Sub(start).Hours()/24) + 1

	fmt.Printf("Testing %d days...\n\n", totalDays)

	results := make([]TestResult, totalDays)
	var tested, failed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < totalDays; i++ {
		i := i
		dateStr := start.AddDate(0, 0, i).Format("2006-01-02")
		g.Go(func() error {
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
			results[i] = s.testDate(ctx, dateStr)
			if !results[i].Success {
				failed.Add(1)
			}
			if n := tested.Add(1); n%100 == 0 || int(n) == totalDays {
				fmt.Printf("  Progress: %d/%d - Failures: %d\n", n, totalDays, failed.Load())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	fmt.Println()
	return results, nil
}

func (s *sweeper) testDate(ctx context.Context, dateStr string) TestResult {
	result := TestResult{Date: dateStr, Category: CategoryRequest}

	url := fmt.Sprintf("%s/api/v1/chronos?date=%s&time=%s", s.baseURL, dateStr, s.clock)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if s.apiKey != "" {
		req.Header.Set("X-API-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("Connection error: %v", err)
		return result
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Error = fmt.Sprintf("Read error: %v", err)
		return result
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		result.Error = fmt.Sprintf("Parse error: %v", err)
		return result
	}

	if !apiResp.Success {
		errMsg := "Unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		result.Error = errMsg
		return result
	}

	var bundle Bundle
	if err := json.Unmarshal(apiResp.Data, &bundle); err != nil {
		result.Error = fmt.Sprintf("Data parse error: %v", err)
		return result
	}

	switch {
	case bundle.Planets["Error"] != "":
		result.Category = CategoryPlanets
		result.Error = bundle.Planets["Error"]
	case bundle.Weton["Pasaran"] == "Unknown":
		result.Category = CategoryWeton
		result.Error = "Unknown"
	default:
		result.Success = true
		result.Category = ""
	}

	return result
}

func analyzeResults(results []TestResult) *Analysis {
	analysis := &Analysis{
		ByCategory: make(map[string]*CategoryStats),
		ByYear:     make(map[int]*YearStats),
	}

	for _, r := range results {
		analysis.TotalDays++

		date, _ := time.Parse("2006-01-02", r.Date)
		year := date.Year()
		if _, ok := analysis.ByYear[year]; !ok {
			analysis.ByYear[year] = &YearStats{Year: year}
		}
		analysis.ByYear[year].TotalDays++

		if r.Success {
			analysis.TotalSuccess++
			analysis.ByYear[year].SuccessDays++
			continue
		}

		analysis.TotalFailed++
		analysis.ByYear[year].FailedDays++
		if _, ok := analysis.ByCategory[r.Category]; !ok {
			analysis.ByCategory[r.Category] = &CategoryStats{Category: r.Category}
		}
		analysis.ByCategory[r.Category].FailedDates = append(analysis.ByCategory[r.Category].FailedDates, r.Date)
	}

	return analysis
}

func printSummary(analysis *Analysis, startYear, endYear int) {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	fmt.Printf("Total Days Tested: %d\n", analysis.TotalDays)
	fmt.Printf("Successful:        %d (%.1f%%)\n", analysis.TotalSuccess,
		float64(analysis.TotalSuccess)/float64(analysis.TotalDays)*100)
	fmt.Printf("Failed:            %d (%.1f%%)\n", analysis.TotalFailed,
		float64(analysis.TotalFailed)/float64(analysis.TotalDays)*100)
	fmt.Println()

	// By year
	fmt.Println("By Year:")
	for year := startYear; year <= endYear; year++ {
		if stats, ok := analysis.ByYear[year]; ok {
			status := "✓"
			if stats.FailedDays > 0 {
				status = "✗"
			}
			fmt.Printf("  %s %d: %d/%d days (%.1f%% success)\n",
				status, year, stats.SuccessDays, stats.TotalDays,
				float64(stats.SuccessDays)/float64(stats.TotalDays)*100)
		}
	}
	fmt.Println()
}

func printFailuresByCategory(analysis *Analysis) {
	if analysis.TotalFailed == 0 {
		fmt.Println("No failures! 🎉")
		return
	}

	fmt.Println("================================================================")
	fmt.Println("FAILURES BY CATEGORY")
	fmt.Println("================================================================")

	// Sort categories by failure count
	var categories []*CategoryStats
	for _, stats := range analysis.ByCategory {
		categories = append(categories, stats)
	}
	sort.Slice(categories, func(i, j int) bool {
		return len(categories[i].FailedDates) > len(categories[j].FailedDates)
	})

	for _, stats := range categories {
		fmt.Printf("\n%s: %d failures\n", stats.Category, len(stats.FailedDates))
		// Show up to 5 example dates
		for i, date := range stats.FailedDates {
			if i == 5 {
				fmt.Printf("  ... and %d more\n", len(stats.FailedDates)-5)
				break
			}
			fmt.Printf("  - %s\n", date)
		}
	}
	fmt.Println()
}

func saveResults(path string, results []TestResult) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		fmt.Printf("Error encoding results: %v\n", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Printf("Error writing %s: %v\n", path, err)
		return
	}
	fmt.Printf("Results written to %s\n", path)
}
