package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
}

// BundleResponse is the response for /api/v1/chronos. Category payloads
// stay loose because failed categories collapse to a single marker key.
type BundleResponse struct {
	Coordinates map[string]string `json:"COSMIC_COORDINATES"`
	Planets     map[string]string `json:"PLANETARY_POSITIONS"`
	Weton       map[string]any    `json:"WETON_JAVA"`
	Chinese     map[string]string `json:"CHINESE_ZODIAC"`
	Numerology  map[string]int    `json:"NUMEROLOGY_BIRTH"`
}

// WetonDay is one entry of the weton endpoints.
type WetonDay struct {
	Date  string         `json:"date"`
	Day   string         `json:"day"`
	JDN   int            `json:"jdn"`
	Weton map[string]any `json:"weton"`
}

// WetonRangeResponse is the response for /weton/range
type WetonRangeResponse struct {
	Start string     `json:"start"`
	End   string     `json:"end"`
	Days  []WetonDay `json:"days"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Chronos API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	// Run test groups
	tr.testHealth()
	tr.testChronos()
	tr.testWeton()
	tr.testShioAndNumerology()
	tr.testEdgeCases()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var health HealthResponse
	if err := json.Unmarshal(resp.Data, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testChronos() {
	tr.printSection("Result Bundle")

	cases := []struct {
		date, clock string
		weton, shio string
		lifePath    int
	}{
		{"1990-01-01", "08:30", "Senin Kliwon", "Metal Horse", 3},
		{"2010-05-03", "12:00", "Senin Pahing", "Metal Tiger", 11},
		{"1984-02-29", "23:15", "Rabu Pahing", "Wood Rat", 8},
	}

	for _, tc := range cases {
		name := tc.date + " " + tc.clock
		resp, err := tr.get(fmt.Sprintf("/api/v1/chronos?date=%s&time=%s", tc.date, tc.clock))
		if err != nil {
			tr.recordError("GET "+name, err.Error())
			continue
		}

		var bundle BundleResponse
		if err := json.Unmarshal(resp.Data, &bundle); err != nil {
			tr.recordError("GET "+name, err.Error())
			continue
		}

		switch {
		case bundle.Planets["Error"] != "":
			tr.recordError("GET "+name, "planetary positions failed")
		case bundle.Weton["Pasaran"] != tc.weton:
			tr.recordError("GET "+name, fmt.Sprintf("weton = %v, want %s", bundle.Weton["Pasaran"], tc.weton))
		case bundle.Chinese["Shio_Elemen"] != tc.shio:
			tr.recordError("GET "+name, fmt.Sprintf("shio = %s, want %s", bundle.Chinese["Shio_Elemen"], tc.shio))
		case bundle.Numerology["Life_Path"] != tc.lifePath:
			tr.recordError("GET "+name, fmt.Sprintf("life path = %d, want %d", bundle.Numerology["Life_Path"], tc.lifePath))
		default:
			tr.recordSuccess(fmt.Sprintf("%s: Sun %s, Ascendant %s", name, bundle.Planets["Sun"], bundle.Planets["Ascendant"]))
			tr.printBundleDetail(&bundle)
		}
	}

	// POST must agree with GET
	resp, err := tr.post("/api/v1/chronos", map[string]string{"date": "1990-01-01", "time": "08:30"})
	if err != nil {
		tr.recordError("POST chronos", err.Error())
		return
	}
	var bundle BundleResponse
	if err := json.Unmarshal(resp.Data, &bundle); err != nil {
		tr.recordError("POST chronos", err.Error())
		return
	}
	if bundle.Coordinates["Time"] == "08:30:00" {
		tr.recordSuccess("POST chronos echoes the birth moment")
	} else {
		tr.recordError("POST chronos", fmt.Sprintf("Time = %s, want 08:30:00", bundle.Coordinates["Time"]))
	}
}

func (tr *TestRunner) testWeton() {
	tr.printSection("Weton")

	resp, err := tr.get("/api/v1/weton/date/2010-05-03")
	if err != nil {
		tr.recordError("Weton date", err.Error())
	} else {
		var day WetonDay
		if err := json.Unmarshal(resp.Data, &day); err != nil {
			tr.recordError("Weton date", err.Error())
		} else if day.JDN != 2455319 || day.Weton["Pasaran"] != "Senin Pahing" {
			tr.recordError("Weton date", fmt.Sprintf("got JDN %d, %v", day.JDN, day.Weton["Pasaran"]))
		} else {
			tr.recordSuccess("2010-05-03 is Senin Pahing at the reference JDN")
		}
	}

	_, err = tr.get("/api/v1/weton/range?start=2024-01-01&end=2024-01-35")
	if err == nil {
		tr.recordError("Weton range", "invalid end date was accepted")
	} else {
		tr.recordSuccess("Invalid range end rejected")
	}

	resp, err = tr.get("/api/v1/weton/range?start=2024-01-01&end=2024-02-05")
	if err != nil {
		tr.recordError("Weton range", err.Error())
		return
	}
	var rng WetonRangeResponse
	if err := json.Unmarshal(resp.Data, &rng); err != nil {
		tr.recordError("Weton range", err.Error())
		return
	}
	if len(rng.Days) != 36 {
		tr.recordError("Weton range", fmt.Sprintf("got %d days, want 36", len(rng.Days)))
		return
	}
	// 35 days is one full weton cycle
	if rng.Days[0].Weton["Pasaran"] != rng.Days[35].Weton["Pasaran"] {
		tr.recordError("Weton range", "weton did not repeat after 35 days")
		return
	}
	tr.recordSuccess("Weton repeats after 35 days")
}

func (tr *TestRunner) testShioAndNumerology() {
	tr.printSection("Shio and Numerology")

	resp, err := tr.get("/api/v1/shio/2024")
	if err != nil {
		tr.recordError("Shio", err.Error())
	} else {
		var shio map[string]any
		_ = json.Unmarshal(resp.Data, &shio)
		if shio["shio"] == "Wood Dragon" {
			tr.recordSuccess("2024 is Wood Dragon")
		} else {
			tr.recordError("Shio", fmt.Sprintf("2024 = %v, want Wood Dragon", shio["shio"]))
		}
	}

	resp, err = tr.get("/api/v1/numerology/date/1990-09-10")
	if err != nil {
		tr.recordError("Numerology", err.Error())
		return
	}
	var num map[string]any
	_ = json.Unmarshal(resp.Data, &num)
	if num["Life_Path"] == float64(11) && num["master"] == true {
		tr.recordSuccess("1990-09-10 keeps master number 11")
	} else {
		tr.recordError("Numerology", fmt.Sprintf("got %v", num))
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	badRequests := []struct {
		name string
		path string
	}{
		{"Missing date", "/api/v1/chronos"},
		{"Invalid date", "/api/v1/chronos?date=1990-02-30"},
		{"Invalid time", "/api/v1/chronos?date=1990-01-01&time=7pm"},
		{"Range over 90 days", "/api/v1/weton/range?start=2024-01-01&end=2024-12-31"},
		{"Non-numeric year", "/api/v1/shio/dragon"},
	}

	for _, tc := range badRequests {
		resp, err := tr.getRaw(tr.baseURL + tc.path)
		if err != nil {
			tr.recordError(tc.name, err.Error())
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusBadRequest {
			tr.recordSuccess(fmt.Sprintf("%s returns 400", tc.name))
		} else {
			tr.recordError(tc.name, fmt.Sprintf("status %d, want 400", resp.StatusCode))
		}
	}
}

// =============================================================================
// Helpers
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.getRaw(tr.baseURL + path)
	if err != nil {
		return nil, err
	}
	return tr.decode(resp)
}

func (tr *TestRunner) post(path string, body any) (*APIResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, tr.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := tr.do(req)
	if err != nil {
		return nil, err
	}
	return tr.decode(resp)
}

func (tr *TestRunner) decode(resp *http.Response) (*APIResponse, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

func (tr *TestRunner) getRaw(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return tr.do(req)
}

func (tr *TestRunner) do(req *http.Request) (*http.Response, error) {
	if tr.apiKey != "" {
		req.Header.Set("X-API-Key", tr.apiKey)
	}
	return tr.client.Do(req)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printBundleDetail(b *BundleResponse) {
	if !tr.verbose {
		return
	}
	for _, body := range []string{"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn"} {
		fmt.Printf("    %-8s %s\n", body+":", b.Planets[body])
	}
	fmt.Printf("    Weton:    %v (neptu %v, wuku %v)\n", b.Weton["Pasaran"], b.Weton["Neptu"], b.Weton["Wuku"])
	fmt.Printf("    Lakuning: %v\n", b.Weton["Lakuning"])
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key sent as X-API-Key")
	verbose := flag.Bool("v", false, "Verbose output (show bundle details)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
