package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	fetchapp "github.com/chrisliatas/combobooks/business/fetch/app"
	ob "github.com/chrisliatas/combobooks/business/orderbook/domain"
	"github.com/chrisliatas/combobooks/internal/apperror"
	"github.com/chrisliatas/combobooks/internal/httpclient"
	"github.com/chrisliatas/combobooks/internal/logger"
	"github.com/chrisliatas/combobooks/internal/ratelimit"
)

// HTTPFetcher implements fetchapp.Fetcher over the instrumented HTTP
// client, throttled by a shared rate limiter and guarded by one circuit
// breaker per venue — a slow or erroring venue trips its own breaker
// without starving requests to the others.
type HTTPFetcher struct {
	client   httpclient.Client
	limiter  *ratelimit.Limiter
	breakers map[string]*gobreaker.CircuitBreaker[*ob.Book]
	retries  int
	timeout  time.Duration
	backoff  time.Duration
	log      logger.Logger
}

// FetcherConfig configures HTTPFetcher construction.
type FetcherConfig struct {
	Venues         []string
	Retries        int
	Timeout        time.Duration
	InitBackoff    time.Duration
	RequestsPerSec float64
	BreakerFailure uint32
}

// NewHTTPFetcher builds an HTTPFetcher with one breaker per configured
// venue, matching the teacher's per-provider instrumented-client pattern.
func NewHTTPFetcher(cfg FetcherConfig, log logger.Logger) (*HTTPFetcher, error) {
	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("snapshot-fetcher"),
		httpclient.WithRequestTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("build http client: %w", err)
	}

	breakers := make(map[string]*gobreaker.CircuitBreaker[*ob.Book], len(cfg.Venues))
	for _, v := range cfg.Venues {
		settings := gobreaker.Settings{
			Name: "fetch-" + v,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.BreakerFailure
			},
		}
		breakers[v] = gobreaker.NewCircuitBreaker[*ob.Book](settings)
	}

	burst := cfg.RequestsPerSec
	if burst < 1 {
		burst = 1
	}
	return &HTTPFetcher{
		client:   client,
		limiter:  ratelimit.NewWithBurst(cfg.RequestsPerSec, int(burst)),
		breakers: breakers,
		retries:  cfg.Retries,
		timeout:  cfg.Timeout,
		backoff:  cfg.InitBackoff,
		log:      log,
	}, nil
}

// Fetch retrieves and normalizes src's snapshot, retrying transport
// failures with exponential backoff up to f.retries times, all behind the
// venue's circuit breaker and the shared rate limiter.
func (f *HTTPFetcher) Fetch(ctx context.Context, src fetchapp.Source, depth int) (*ob.Book, error) {
	normalize, ok := Normalizers[src.Venue]
	if !ok {
		return nil, apperror.New(apperror.CodeVenueUnknown, apperror.WithContext(src.Venue))
	}
	breaker, ok := f.breakers[src.Venue]
	if !ok {
		return nil, apperror.New(apperror.CodeVenueUnknown, apperror.WithContext(src.Venue))
	}

	return breaker.Execute(func() (*ob.Book, error) {
		var lastErr error
		backoff := f.backoff
		for attempt := 0; attempt <= f.retries; attempt++ {
			if attempt > 0 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
			}
			if err := f.limiter.Wait(ctx); err != nil {
				return nil, err
			}
			resp, err := f.client.NewRequest().Get(ctx, src.URL)
			if err != nil {
				lastErr = apperror.New(apperror.CodeTransportFailure, apperror.WithCause(err))
				f.log.Warn(ctx, "snapshot fetch failed", "venue", src.Venue, "pair", src.Pair, "attempt", attempt, "error", err)
				continue
			}
			if resp.IsError() {
				lastErr = apperror.New(apperror.CodeTransportFailure, apperror.WithContext(fmt.Sprintf("status %d", resp.StatusCode)))
				continue
			}
			book, err := normalize(resp.Body(), src.Venue, src.Pair, depth)
			if err != nil {
				return nil, err
			}
			return book, nil
		}
		return nil, lastErr
	})
}
