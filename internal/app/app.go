// Package app wires the catalog sweep, the province prompt and the cost
// aggregation into a single run.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/noah-isme/timecost/internal/catalog"
	"github.com/noah-isme/timecost/internal/config"
	"github.com/noah-isme/timecost/internal/console"
	"github.com/noah-isme/timecost/internal/obs"
	"github.com/noah-isme/timecost/internal/pricing"
	"github.com/noah-isme/timecost/internal/resilience"
	"github.com/noah-isme/timecost/internal/tax"
)

// PageSource yields every non-empty catalog page.
type PageSource interface {
	FetchAllPages(ctx context.Context) ([]catalog.Page, error)
}

// Dependencies enumerates the collaborators of a run.
type Dependencies struct {
	Catalog  PageSource
	Taxes    tax.Table
	In       io.Reader
	Out      io.Writer
	Logger   zerolog.Logger
	Metrics  *obs.CatalogMetrics
	Registry *prometheus.Registry
}

// NewDependencies builds production collaborators from cfg.
func NewDependencies(cfg *config.Config, in io.Reader, out io.Writer, logger zerolog.Logger) (*Dependencies, error) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewCatalogMetrics(cfg.MetricsNamespace, cfg.MetricsBucketsMS, registry)

	client := resilience.NewHTTPClient(resilience.ClientConfig{
		Timeout:           cfg.CatalogRequestTimeout,
		RequestsPerSecond: cfg.CatalogRequestsPerSecond,
	})
	fetcher, err := catalog.NewFetcher(catalog.FetcherConfig{
		ProductsURL:  cfg.ProductsURL(),
		Client:       client,
		MaxPageBytes: cfg.CatalogMaxPageBytes,
		Metrics:      metrics,
		Logger:       &logger,
	})
	if err != nil {
		return nil, err
	}
	return &Dependencies{
		Catalog:  fetcher,
		Taxes:    tax.Canada(),
		In:       in,
		Out:      out,
		Logger:   logger,
		Metrics:  metrics,
		Registry: registry,
	}, nil
}

// Run sweeps the catalog, asks for the buyer's region and prints the total.
// A failed sweep returns before anything is priced. A failed write to Out
// aborts before the total is printed.
func Run(ctx context.Context, deps *Dependencies) (pricing.Summary, error) {
	pages, err := deps.Catalog.FetchAllPages(ctx)
	if err != nil {
		return pricing.Summary{}, fmt.Errorf("sweep catalog: %w", err)
	}
	timepieces := catalog.SelectTimepieces(pages)
	if deps.Metrics != nil {
		deps.Metrics.Timepieces.Set(float64(len(timepieces)))
	}
	deps.Logger.Info().Int("pages", len(pages)).Int("timepieces", len(timepieces)).Msg("timepieces_selected")

	region, err := console.PromptRegion(deps.In, deps.Out, tax.Codes())
	if err != nil {
		return pricing.Summary{}, err
	}
	if !deps.Taxes.Known(region) {
		deps.Logger.Warn().Str("region", region).Msg("unrecognised_region_no_tax")
	}
	multiplier := deps.Taxes.Resolve(region)

	var writeErr error
	summary := pricing.ComputeTotal(timepieces, multiplier, pricing.Options{
		Reporter: pricing.ReporterFunc(func(p catalog.Product, v catalog.Variant) {
			if writeErr != nil {
				return
			}
			if _, err := fmt.Fprintln(deps.Out, pricing.UnavailableMessage(p, v)); err != nil {
				writeErr = fmt.Errorf("write diagnostic: %w", err)
			}
		}),
		Logger:  &deps.Logger,
		Metrics: deps.Metrics,
	})
	deps.Logger.Info().
		Str("region", region).
		Str("multiplier", multiplier.String()).
		Str("base", summary.Base.String()).
		Str("tax", summary.Tax.String()).
		Str("total", summary.Total.String()).
		Msg("total_computed")
	if writeErr != nil {
		return summary, writeErr
	}

	if _, err := fmt.Fprintf(deps.Out, "The total cost is %s\n", pricing.FormatCAD(summary.Total)); err != nil {
		return summary, err
	}
	return summary, nil
}
