package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

type rankedRow struct {
	Option     string  `json:"option"`
	Label      string  `json:"label"`
	TotalScore float64 `json:"total_score"`
}

type saveOut struct {
	Saved []struct {
		Table  string `json:"table"`
		Status string `json:"status"`
	} `json:"saved"`
}

func main() {
	base := envOr("API_BASE_URL", "http://localhost:8000")
	token := os.Getenv("API_TOKEN")

	c := resty.New().
		SetBaseURL(base).
		SetTimeout(12 * time.Second).
		SetHeader("Content-Type", "application/json")
	if token != "" {
		c.SetAuthToken(token)
	}

	// 1) Two options with labels
	mustPost(c, resty.MethodPut, "/matrix/options", map[string]any{
		"count": 2,
		"labels": map[string]string{
			"Option A": "Beach parcel",
			"Option B": "Forest parcel",
		},
	})
	fmt.Println("✅ Options configured")

	// 2) Criteria and weights
	for _, name := range []string{"Price", "Road access"} {
		mustPost(c, resty.MethodPost, "/matrix/criteria", map[string]any{"name": name})
	}
	mustPost(c, resty.MethodPut, "/matrix/weights", map[string]any{"criterion": "Price", "weight": 2.0})
	fmt.Println("✅ Criteria added and weighted")

	// 3) Both reviewers rate; Beach parcel should win on Price
	ratings := []map[string]any{
		{"reviewer": "Maya", "option": "Option A", "criterion": "Price", "score": 5},
		{"reviewer": "Mike", "option": "Option A", "criterion": "Price", "score": 4},
		{"reviewer": "Maya", "option": "Option B", "criterion": "Price", "score": 2},
		{"reviewer": "Mike", "option": "Option B", "criterion": "Price", "score": 2},
	}
	for _, rt := range ratings {
		mustPost(c, resty.MethodPut, "/matrix/ratings", rt)
	}
	mustPost(c, resty.MethodPut, "/matrix/comments", map[string]any{
		"criterion": "Price", "option": "Option A", "comment": "below market, seller motivated",
	})
	fmt.Println("✅ Ratings and comment recorded")

	// 4) Explicit save; everything was autosaved so tables should skip
	var saved saveOut
	res, err := c.R().SetResult(&saved).Post("/matrix/save")
	if err != nil || res.StatusCode() != 200 {
		fatalf("save: err=%v status=%d body=%s", err, res.StatusCode(), res.String())
	}
	for _, t := range saved.Saved {
		fmt.Printf("   table %-12s %s\n", t.Table, t.Status)
	}

	// 5) Summary must rank the beach parcel first
	var summary []rankedRow
	res, err = c.R().SetResult(&summary).Get("/matrix/summary")
	if err != nil || res.StatusCode() != 200 {
		fatalf("summary: err=%v status=%d body=%s", err, res.StatusCode(), res.String())
	}
	if len(summary) == 0 || summary[0].Option != "Option A" {
		fatalf("expected Option A ranked first, got %+v", summary)
	}
	fmt.Printf("✅ Summary: %+v\n", summary)

	// 6) PDF report
	res, err = c.R().Get("/matrix/report")
	if err != nil || res.StatusCode() != 200 {
		fatalf("report: err=%v status=%d", err, res.StatusCode())
	}
	if err := os.WriteFile("decision_summary.pdf", res.Body(), 0o644); err != nil {
		fatalf("write report: %v", err)
	}
	fmt.Printf("✅ Report written: decision_summary.pdf (%d bytes)\n", len(res.Body()))

	fmt.Println("🎉 Smoke run OK.")
}

// --- helpers ---

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustPost(c *resty.Client, method, path string, body any) {
	req := c.R().SetBody(body)
	var (
		res *resty.Response
		err error
	)
	switch method {
	case resty.MethodPut:
		res, err = req.Put(path)
	default:
		res, err = req.Post(path)
	}
	if err != nil {
		fatalf("%s %s: %v", method, path, err)
	}
	if res.StatusCode() != 200 {
		fatalf("%s %s -> %d: %s", method, path, res.StatusCode(), res.String())
	}
}

func fatalf(format string, args ...any) {
	fmt.Printf("❌ "+format+"\n", args...)
	os.Exit(1)
}
