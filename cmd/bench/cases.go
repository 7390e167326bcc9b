// README: Bench cases for the plan API; includes HTTP contract, DB, Redis, concurrency and throughput checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
	StatusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

// busanRequest is the reference request; mutate a copy for negative cases.
func busanRequest() map[string]any {
	return map[string]any{
		"destination":   "Busan",
		"duration_days": 2,
		"party_size":    2,
		"budget_krw":    500000,
		"accommodation": map[string]any{"address_name": "부산 해운대구 해운대해변로 264", "latitude": 35.1595, "longitude": 129.1603},
		"transportation": map[string]any{
			"main_mode":   "public_transport",
			"preferences": []string{},
		},
		"style": map[string]any{
			"pace":              "relaxed",
			"atmosphere":        "quiet",
			"walking":           "like",
			"interests":         []string{"food"},
			"food_restrictions": []string{},
		},
	}
}

func withField(path string, value any) map[string]any {
	req := busanRequest()
	parts := strings.Split(path, ".")
	m := req
	for _, p := range parts[:len(parts)-1] {
		m = m[p].(map[string]any)
	}
	m[parts[len(parts)-1]] = value
	return req
}

func (r *Runner) cases() []TestCase {
	plan := r.cfg.BaseURL + "/api/v1/plan"
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: StatusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: StatusFail, Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: StatusFail, Note: err.Error()}
					}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: StatusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: StatusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: StatusPass}
			},
		},
		httpCase("API: health", http.MethodGet, r.cfg.BaseURL+"/health", nil, http.StatusOK),

		// Request contract; none of these may reach the model.
		httpCase("Contract: unknown main_mode -> 400", http.MethodPost, plan, withField("transportation.main_mode", "bicycle"), http.StatusBadRequest),
		httpCase("Contract: capitalised pace -> 400", http.MethodPost, plan, withField("style.pace", "Relaxed"), http.StatusBadRequest),
		httpCase("Contract: zero duration_days -> 400", http.MethodPost, plan, withField("duration_days", 0), http.StatusBadRequest),
		httpCase("Contract: null interests -> 400", http.MethodPost, plan, withField("style.interests", nil), http.StatusBadRequest),
		httpCase("Contract: empty body -> 400", http.MethodPost, plan, map[string]any{}, http.StatusBadRequest),
		{
			Name: "Contract: oversize body -> 400",
			Run: func(ctx context.Context, r *Runner) Result {
				body := bytes.Repeat([]byte("a"), 1<<20+1)
				return doCase(ctx, r, http.MethodPost, plan, body, http.StatusBadRequest)
			},
		},

		// Generation; these call the configured provider.
		{
			Name: "Plan: Busan 2 days",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Generate {
					return Result{Status: StatusSkip, Note: "generate=false"}
				}
				return planCase(ctx, r, plan, 2)
			},
		},
		{
			Name: "Concurrency: parallel plans",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Generate {
					return Result{Status: StatusSkip, Note: "generate=false"}
				}
				return concurrentPlans(ctx, r, plan)
			},
		},

		{
			Name: "Perf: validation reject throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, plan, withField("transportation.main_mode", "bicycle"))
			},
		},
	}
}

func httpCase(name, method, url string, body any, want int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			var b []byte
			if body != nil {
				b, _ = json.Marshal(body)
			}
			return doCase(ctx, r, method, url, b, want)
		},
	}
}

func doCase(ctx context.Context, r *Runner, method, url string, body []byte, want int) Result {
	req, _ := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	latency := time.Since(start)

	note := fmt.Sprintf("status=%d", resp.StatusCode)
	if resp.StatusCode != want {
		return Result{Status: StatusFail, Latency: latency, Note: note + fmt.Sprintf(" want=%d", want)}
	}
	return Result{Status: StatusPass, Latency: latency, Note: note}
}

func planCase(ctx context.Context, r *Runner, url string, days int) Result {
	b, _ := json.Marshal(withField("duration_days", days))
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	defer resp.Body.Close()
	latency := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
	}
	var out struct {
		TripTitle string            `json:"trip_title"`
		Plan      []json.RawMessage `json:"plan"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{Status: StatusFail, Latency: latency, Note: err.Error()}
	}
	return Result{Status: StatusPass, Latency: latency, Note: fmt.Sprintf("title=%q days=%d/%d", out.TripTitle, len(out.Plan), days)}
}

// concurrentPlans checks that parallel generations never produce a client error.
func concurrentPlans(ctx context.Context, r *Runner, url string) Result {
	b, _ := json.Marshal(busanRequest())
	wg := sync.WaitGroup{}
	mu := sync.Mutex{}
	statuses := map[int]int{}
	start := time.Now()

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
			req.Header.Set("Content-Type", "application/json")
			code := 0
			if resp, err := r.httpc.Do(req); err == nil {
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				code = resp.StatusCode
			}
			mu.Lock()
			statuses[code]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	note := fmt.Sprintf("statuses=%v", statuses)
	if statuses[http.StatusOK] == 0 {
		return Result{Status: StatusFail, Latency: time.Since(start), Note: note}
	}
	for code := range statuses {
		if code >= 400 && code < 500 {
			return Result{Status: StatusFail, Latency: time.Since(start), Note: note}
		}
	}
	return Result{Status: StatusPass, Latency: time.Since(start), Note: note}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count int64
	var errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: StatusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: StatusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
