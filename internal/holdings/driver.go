package holdings

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/law-makers/holdings/internal/engine"
	"github.com/law-makers/holdings/internal/utils/output"
	"github.com/law-makers/holdings/pkg/models"
)

// DefaultWorkers is the size of the fund-page worker pool
const DefaultWorkers = 5

// State is a Driver lifecycle phase. Phases only move forward.
type State string

const (
	StateIdle        State = "idle"
	StateCollecting  State = "collecting"
	StateDispatching State = "dispatching"
	StateDraining    State = "draining"
	StateDone        State = "done"
)

// Config holds everything a scrape run needs
type Config struct {
	ListingURL      string
	LinkSelector    string
	TableSelector   string
	Schema          models.Schema
	Workers         int
	OutputPath      string
	SkipMissingHref bool
}

// Driver runs one scrape: collect links, fan out to workers, write the CSV
type Driver struct {
	cfg     Config
	fetcher engine.Fetcher

	mu    sync.Mutex
	state State

	// OnLinksCollected is called once with the number of links to process
	OnLinksCollected func(n int)
	// OnLinkDone is called from worker goroutines after each link finishes
	OnLinkDone func(link string, rows int, err error)
}

// NewDriver creates a Driver that fetches pages with f
func NewDriver(cfg Config, f engine.Fetcher) *Driver {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if len(cfg.Schema.Columns) == 0 {
		cfg.Schema = models.DefaultSchema()
	}
	return &Driver{cfg: cfg, fetcher: f, state: StateIdle}
}

// State returns the current lifecycle phase
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Driver) setState(s State) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
	log.Debug().Str("state", string(s)).Msg("Driver state changed")
}

// Run performs the scrape. A listing page failure is returned before any
// output file is created; per-link failures are logged and counted only.
func (d *Driver) Run(ctx context.Context) (summary *models.Summary, err error) {
	start := time.Now()
	summary = &models.Summary{StartedAt: start}
	defer func() {
		summary.Duration = time.Since(start)
		d.setState(StateDone)
	}()

	d.setState(StateCollecting)
	links, err := CollectLinks(ctx, d.fetcher, d.cfg.ListingURL, d.cfg.LinkSelector, LinkOptions{
		SkipMissingHref: d.cfg.SkipMissingHref,
	})
	if err != nil {
		log.Error().Err(err).Str("url", d.cfg.ListingURL).Msg("Failed to collect links")
		return summary, fmt.Errorf("collect links: %w", err)
	}

	summary.Links = len(links)
	if len(links) == 0 {
		log.Info().Str("url", d.cfg.ListingURL).Msg("No links found")
		return summary, nil
	}
	if d.OnLinksCollected != nil {
		d.OnLinksCollected(len(links))
	}

	w, err := output.CreateCSV(d.cfg.OutputPath)
	if err != nil {
		return summary, err
	}
	summary.OutputPath = d.cfg.OutputPath
	defer func() {
		summary.Rows = w.Rows()
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	if err := w.WriteHeader(d.cfg.Schema.Header()); err != nil {
		return summary, fmt.Errorf("write header: %w", err)
	}

	log.Info().
		Int("links", len(links)).
		Int("workers", d.cfg.Workers).
		Str("output", d.cfg.OutputPath).
		Msg("Fetching data from tables")

	d.setState(StateDispatching)
	proc := NewProcessor(d.fetcher, d.cfg.TableSelector, d.cfg.Schema, w)

	var g errgroup.Group
	g.SetLimit(d.cfg.Workers)

	var processed, skipped, failed atomic.Int64
	for _, link := range links {
		if ctx.Err() != nil {
			log.Warn().Msg("Run cancelled, no further links dispatched")
			break
		}
		link := link
		g.Go(func() error {
			rows, taskErr := runTask(ctx, proc, link)
			switch {
			case taskErr == nil:
				processed.Add(1)
			case IsSkip(taskErr):
				skipped.Add(1)
			default:
				failed.Add(1)
				log.Error().Err(taskErr).Str("link", link).Msg("Error processing link")
			}
			if d.OnLinkDone != nil {
				d.OnLinkDone(link, rows, taskErr)
			}
			// Never abort siblings
			return nil
		})
	}

	d.setState(StateDraining)
	_ = g.Wait()

	summary.Processed = int(processed.Load())
	summary.Skipped = int(skipped.Load())
	summary.Failed = int(failed.Load())

	log.Info().
		Int("processed", summary.Processed).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("All links handled")

	if ctxErr := ctx.Err(); ctxErr != nil {
		return summary, ctxErr
	}
	return summary, nil
}

// runTask isolates a panic in one link from the rest of the pool
func runTask(ctx context.Context, p *Processor, link string) (rows int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing %s: %v", link, r)
		}
	}()
	return p.Process(ctx, link)
}
