package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/timecost/internal/common"
	"github.com/noah-isme/timecost/internal/obs"
	"github.com/noah-isme/timecost/internal/resilience"
)

const tracerName = "github.com/noah-isme/timecost/internal/catalog"

// Doer performs a single HTTP exchange. resilience.HTTPClient satisfies it.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Fetcher walks the paginated products.json endpoint of a storefront.
type Fetcher struct {
	endpoint *url.URL
	client   Doer
	limit    resilience.BodyLimit
	metrics  *obs.CatalogMetrics
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// FetcherConfig groups Fetcher dependencies.
type FetcherConfig struct {
	ProductsURL  string
	Client       Doer
	// MaxPageBytes bounds a single page body; 0 means unbounded.
	MaxPageBytes int64
	Metrics      *obs.CatalogMetrics
	Logger       *zerolog.Logger
	// Tracing defaults to the global provider.
	Tracing      trace.TracerProvider
}

// NewFetcher validates the configuration and constructs a Fetcher.
func NewFetcher(cfg FetcherConfig) (*Fetcher, error) {
	if cfg.Client == nil {
		return nil, errors.New("catalog: http client is required")
	}
	endpoint, err := url.Parse(cfg.ProductsURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse products url: %w", err)
	}
	if endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("catalog: products url %q must be absolute", cfg.ProductsURL)
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	tracing := cfg.Tracing
	if tracing == nil {
		tracing = otel.GetTracerProvider()
	}
	return &Fetcher{
		endpoint: endpoint,
		client:   cfg.Client,
		limit:    resilience.BodyLimit{Max: cfg.MaxPageBytes},
		metrics:  cfg.Metrics,
		logger:   logger.With().Str("component", "catalog").Logger(),
		tracer:   tracing.Tracer(tracerName),
	}, nil
}

// FetchAllPages requests page 1, 2, 3, ... until a page decodes to zero
// products. The empty page is not part of the result. Any failure aborts the
// sweep and no pages are returned.
func (f *Fetcher) FetchAllPages(ctx context.Context) ([]Page, error) {
	var pages []Page
	products := 0
	for n := 1; ; n++ {
		page, err := f.FetchPage(ctx, n)
		if err != nil {
			return nil, err
		}
		if page.Empty() {
			f.logger.Info().Int("pages", len(pages)).Int("products", products).Msg("catalog_swept")
			return pages, nil
		}
		products += len(page.Products)
		pages = append(pages, page)
	}
}

// FetchPage retrieves and decodes a single catalog page.
func (f *Fetcher) FetchPage(ctx context.Context, n int) (Page, error) {
	ctx, span := f.tracer.Start(ctx, "catalog.fetch_page", trace.WithAttributes(attribute.Int("catalog.page", n)))
	defer span.End()

	start := time.Now()
	page, err := f.fetchPage(ctx, n)
	if f.metrics != nil {
		f.metrics.FetchDur.Observe(obs.DurationMillis(time.Since(start)))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if f.metrics != nil {
			f.metrics.FetchErrors.WithLabelValues(errorKind(err)).Inc()
		}
		f.logger.Error().Err(err).Int("page", n).Msg("catalog_page_failed")
		return Page{}, err
	}

	span.SetAttributes(attribute.Int("catalog.products", len(page.Products)))
	if f.metrics != nil && !page.Empty() {
		f.metrics.PagesFetched.Inc()
		f.metrics.ProductsFetched.Add(float64(len(page.Products)))
	}
	f.logger.Debug().Int("page", n).Int("products", len(page.Products)).Msg("catalog_page_fetched")
	return page, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, n int) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.pageURL(n), nil)
	if err != nil {
		return Page{}, common.NewAppError(common.CodeCatalogTransport, "build catalog request", 0, err).WithPage(n)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(ctx, req)
	if err != nil {
		return Page{}, common.NewAppError(common.CodeCatalogTransport, "request catalog page", 0, err).WithPage(n)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Page{}, common.NewAppError(common.CodeCatalogStatus, "unexpected catalog status "+resp.Status, resp.StatusCode, nil).WithPage(n)
	}

	body, err := f.limit.ReadAll(resp)
	if errors.Is(err, resilience.ErrBodyTooLarge) {
		return Page{}, common.NewAppError(common.CodeCatalogDecode, "catalog page too large", resp.StatusCode, err).WithPage(n)
	}
	if err != nil {
		return Page{}, common.NewAppError(common.CodeCatalogTransport, "read catalog page", resp.StatusCode, err).WithPage(n)
	}
	products, err := decodeProducts(body)
	if err != nil {
		return Page{}, common.NewAppError(common.CodeCatalogDecode, "decode catalog page", resp.StatusCode, err).WithPage(n)
	}
	return Page{Number: n, Products: products}, nil
}

func (f *Fetcher) pageURL(n int) string {
	u := *f.endpoint
	q := u.Query()
	q.Set("page", strconv.Itoa(n))
	u.RawQuery = q.Encode()
	return u.String()
}

type pagePayload struct {
	Products *[]Product `json:"products"`
}

func decodeProducts(body []byte) ([]Product, error) {
	var payload pagePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.Products == nil {
		return nil, errors.New(`missing "products" array`)
	}
	for _, p := range *payload.Products {
		for _, v := range p.Variants {
			if v.Price.IsNegative() {
				return nil, fmt.Errorf("variant %q of %q has negative price %s", v.Title, p.Title, v.Price)
			}
		}
	}
	return *payload.Products, nil
}

func errorKind(err error) string {
	switch common.ErrorCode(err) {
	case common.CodeCatalogStatus:
		return "status"
	case common.CodeCatalogDecode:
		return "decode"
	default:
		return "transport"
	}
}
