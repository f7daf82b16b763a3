package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/coursetrack/internal/formatter"
	"github.com/desertthunder/coursetrack/internal/models"
	"github.com/desertthunder/coursetrack/internal/services"
	"github.com/desertthunder/coursetrack/internal/shared"
	"github.com/urfave/cli/v3"
)

// CatalogShow prints the normalized catalog.
func (r *Runner) CatalogShow(ctx context.Context, cmd *cli.Command) error {
	ctrl, err := r.controller(ctx)
	if err != nil {
		return err
	}
	sections := ctrl.Sections()

	if cmd.Bool("json") {
		return r.writeJSON(sections, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Catalog: %d sections, %d lessons", len(sections), sections.VideoCount()))
	for _, s := range sections {
		r.writePlainln("%s [%s]", s.Title, s.Key)
		for _, v := range s.Videos {
			r.writePlain("  • %s  %s\n", v.ID, v.Title)
			for _, l := range v.Links {
				r.writePlain("      %s: %s\n", l.Label, l.Href)
			}
		}
	}
	return nil
}

type linkFailure struct {
	Section string `json:"section"`
	VideoID string `json:"videoId"`
	Label   string `json:"label"`
	Href    string `json:"href"`
	Status  int    `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CatalogCheckLinks probes lesson links under the configured rate limit.
//
// Returns an error when any link is unreachable so scripts can rely on the exit code.
func (r *Runner) CatalogCheckLinks(ctx context.Context, cmd *cli.Command) error {
	ctrl, err := r.controller(ctx)
	if err != nil {
		return err
	}

	opts := services.LinkCheckOpts{
		Workers:   r.config.Links.Workers,
		RateLimit: r.config.Links.RateLimit,
		Timeout:   time.Duration(r.config.Links.TimeoutSeconds) * time.Second,
	}
	if cmd.IsSet("workers") {
		opts.Workers = int(cmd.Int("workers"))
	}
	if cmd.IsSet("rate") {
		opts.RateLimit = cmd.Float("rate")
	}
	if opts.Workers < 0 || opts.RateLimit < 0 {
		return fmt.Errorf("%w: --workers and --rate must not be negative", shared.ErrInvalidFlag)
	}

	r.logger.Info("checking links", "workers", opts.Workers, "rate", opts.RateLimit)
	report, err := services.NewLinkChecker(opts).Check(ctx, ctrl.Sections())
	if err != nil {
		return err
	}

	failures := make([]linkFailure, 0, report.Failed)
	for _, res := range report.Failures() {
		f := linkFailure{Section: res.SectionKey, VideoID: res.VideoID, Label: res.Link.Label, Href: res.Link.Href, Status: res.StatusCode}
		if res.Err != nil {
			f.Error = res.Err.Error()
		}
		failures = append(failures, f)
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(map[string]any{
			"total":    report.Total,
			"checked":  report.Checked,
			"skipped":  report.Skipped,
			"failed":   report.Failed,
			"failures": failures,
		}, true); err != nil {
			return err
		}
	} else {
		r.writePlain("Links: %d total, %d checked, %d skipped, %d failed\n", report.Total, report.Checked, report.Skipped, report.Failed)
		if len(failures) > 0 {
			rows := make([][]string, 0, len(failures))
			for _, f := range failures {
				detail := f.Error
				if detail == "" {
					detail = fmt.Sprintf("status %d", f.Status)
				}
				rows = append(rows, []string{f.Section, f.VideoID, f.Label, f.Href, detail})
			}
			r.writePlain("%s\n", renderTable([]string{"Section", "Video", "Link", "URL", "Problem"}, rows))
		}
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d broken links", report.Failed)
	}
	return nil
}

// Sections lists each section with its progress, marking the active one.
func (r *Runner) Sections(ctx context.Context, cmd *cli.Command) error {
	ctrl, err := r.controller(ctx)
	if err != nil {
		return err
	}

	active := ctrl.ActiveKey()
	all := ctrl.AllProgress()
	if len(all) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(all))
	for _, p := range all {
		marker := ""
		if p.Key == active {
			marker = "*"
		}
		rows = append(rows, []string{marker, p.Key, fmt.Sprintf("%d/%d", p.Watched, p.Total), fmt.Sprintf("%.0f%%", p.Percent), p.Title})
	}
	return r.writePlain("%s\n", renderTable([]string{"", "Key", "Watched", "Done", "Title"}, rows, 3, 4))
}

// Select makes the section with the given key active.
func (r *Runner) Select(ctx context.Context, cmd *cli.Command) error {
	key, err := requireArg(cmd, "key")
	if err != nil {
		return err
	}

	ctrl, err := r.controller(ctx)
	if err != nil {
		return err
	}
	if ctrl.Sections().IndexOf(key) < 0 {
		return fmt.Errorf("%w: %s", shared.ErrSectionNotFound, key)
	}

	if ctrl.SelectSection(key) {
		r.logger.Debug("active section changed", "key", key)
	}
	return r.writePlain("active section: %s\n", ctrl.ActiveSection().Title)
}

// lesson resolves the <id> argument against the loaded catalog.
func (r *Runner) lesson(ctx context.Context, cmd *cli.Command) (*models.Video, error) {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return nil, err
	}

	ctrl, err := r.controller(ctx)
	if err != nil {
		return nil, err
	}

	video, _, ok := ctrl.Video(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrVideoNotFound, id)
	}
	return video, nil
}

// Watch marks a lesson as watched.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	video, err := r.lesson(ctx, cmd)
	if err != nil {
		return err
	}

	if !r.ctrl.MarkWatched(video.ID) {
		return r.writePlain("already watched: %s\n", video.Title)
	}
	return r.writePlain("✓ watched: %s\n", video.Title)
}

// Unwatch resets a lesson to not watched.
func (r *Runner) Unwatch(ctx context.Context, cmd *cli.Command) error {
	video, err := r.lesson(ctx, cmd)
	if err != nil {
		return err
	}

	if !r.ctrl.ResetWatched(video.ID) {
		return r.writePlain("not watched: %s\n", video.Title)
	}
	return r.writePlain("○ unwatched: %s\n", video.Title)
}

// Comment overwrites a lesson's comment. An omitted text stores an empty comment.
func (r *Runner) Comment(ctx context.Context, cmd *cli.Command) error {
	video, err := r.lesson(ctx, cmd)
	if err != nil {
		return err
	}

	r.ctrl.UpdateComment(video.ID, cmd.StringArg("text"))
	return r.writePlain("comment saved: %s\n", video.Title)
}

// Progress renders a progress report to stdout or to --output.
func (r *Runner) Progress(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	ctrl, err := r.controller(ctx)
	if err != nil {
		return err
	}
	report := formatter.BuildReport(ctrl.Sections(), ctrl.Watched(), ctrl.Comments())

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteReport(report, format, path); err != nil {
			return err
		}
		r.logger.Info("report written", "path", path, "format", format)
		return nil
	}

	data, err := formatter.Export(report, format)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}

// URL prints the trusted embed URL for a lesson.
func (r *Runner) URL(ctx context.Context, cmd *cli.Command) error {
	video, err := r.lesson(ctx, cmd)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", r.urls.Resolve(video.ExternalVideoID))
}

// Open launches the lesson's watch page in the default browser.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	video, err := r.lesson(ctx, cmd)
	if err != nil {
		return err
	}

	target := r.urls.Resolve(video.ExternalVideoID).WatchURL()
	r.logger.Debug("opening browser", "url", target)
	if err := r.openURL(target); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return r.writePlain("opened %s\n", target)
}

// Reset clears all persisted progress. Requires --yes.
func (r *Runner) Reset(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: pass --yes to clear all saved progress", shared.ErrMissingArgument)
	}

	p, err := r.persistence()
	if err != nil {
		return err
	}
	if err := p.Clear(); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	r.ctrl = nil
	return r.writePlain("progress cleared\n")
}
