package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/desertthunder/coursetrack/internal/models"
	"golang.org/x/time/rate"
)

// LinkCheckOpts contains configuration for [LinkChecker].
type LinkCheckOpts struct {
	Workers   int           // Concurrent workers (default: 4, max: 10)
	RateLimit float64       // Requests per second (default: 5)
	Timeout   time.Duration // Per-request timeout (default: 10s)
	Client    *http.Client
}

// LinkResult is the outcome of probing one lesson link.
type LinkResult struct {
	VideoID    string
	SectionKey string
	Link       models.Link
	StatusCode int
	Skipped    bool
	Err        error
}

// OK reports whether the link was reachable (or intentionally skipped).
func (r LinkResult) OK() bool {
	return r.Skipped || (r.Err == nil && r.StatusCode >= 200 && r.StatusCode < 400)
}

// LinkReport aggregates [LinkResult]s in catalog order.
type LinkReport struct {
	Total   int
	Checked int
	Skipped int
	Failed  int
	Results []LinkResult
}

// Failures returns the results that were neither reachable nor skipped.
func (r *LinkReport) Failures() []LinkResult {
	var failed []LinkResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// LinkChecker probes lesson links concurrently under a shared rate limit.
type LinkChecker struct {
	opts LinkCheckOpts
}

type linkJob struct {
	order      int
	sectionKey string
	videoID    string
	link       models.Link
}

type orderedResult struct {
	order int
	LinkResult
}

// NewLinkChecker creates a [LinkChecker], applying defaults to unset options.
func NewLinkChecker(opts LinkCheckOpts) *LinkChecker {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Workers > 10 {
		opts.Workers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}
	return &LinkChecker{opts: opts}
}

// Check probes every link in sections. Cancelling ctx stops dispatching and returns what was collected.
func (c *LinkChecker) Check(ctx context.Context, sections models.Catalog) (*LinkReport, error) {
	var jobs []linkJob
	for _, s := range sections {
		for _, v := range s.Videos {
			for _, l := range v.Links {
				jobs = append(jobs, linkJob{order: len(jobs), sectionKey: s.Key, videoID: v.ID, link: l})
			}
		}
	}

	report := &LinkReport{Total: len(jobs), Results: make([]LinkResult, 0, len(jobs))}
	limiter := rate.NewLimiter(rate.Limit(c.opts.RateLimit), 1)

	queue := make(chan linkJob, len(jobs))
	results := make(chan orderedResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < c.opts.Workers; i++ {
		wg.Add(1)
		go c.worker(ctx, &wg, limiter, queue, results)
	}

	for _, j := range jobs {
		queue <- j
	}
	close(queue)

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]orderedResult, 0, len(jobs))
	for res := range results {
		collected = append(collected, res)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].order < collected[j].order })

	for _, res := range collected {
		report.Results = append(report.Results, res.LinkResult)
		switch {
		case res.Skipped:
			report.Skipped++
		case res.OK():
			report.Checked++
		default:
			report.Checked++
			report.Failed++
		}
	}

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("link check interrupted: %w", err)
	}

	return report, nil
}

func (c *LinkChecker) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan linkJob,
	results chan<- orderedResult,
) {
	defer wg.Done()

	for j := range jobs {
		res := LinkResult{VideoID: j.videoID, SectionKey: j.sectionKey, Link: j.link}

		if !probeable(j.link.Href) {
			res.Skipped = true
			results <- orderedResult{order: j.order, LinkResult: res}
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			continue
		}

		res.StatusCode, res.Err = c.probe(ctx, j.link.Href)
		results <- orderedResult{order: j.order, LinkResult: res}
	}
}

// probe issues a HEAD request, falling back to GET for servers that reject HEAD.
func (c *LinkChecker) probe(ctx context.Context, href string) (int, error) {
	status, err := c.do(ctx, http.MethodHead, href)
	if err == nil && (status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented) {
		return c.do(ctx, http.MethodGet, href)
	}
	return status, err
}

func (c *LinkChecker) do(ctx context.Context, method, href string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, href, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.opts.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	resp.Body.Close()

	return resp.StatusCode, nil
}

// probeable reports whether href is an absolute http(s) URL.
func probeable(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
