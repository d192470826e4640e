package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/five82/pkgscout/internal/suggest"
)

const defaultSettleTimeout = 10 * time.Second

var errAggregatorClosed = errors.New("aggregator closed")

// runOnce feeds query to the aggregator, waits for the lookup to settle and
// prints the merged suggestions. A lookup that fails or times out still
// prints the local suggestions.
func runOnce(ctx context.Context, c *components, query string, out io.Writer) error {
	c.agg.Input(query)

	res, err := waitSettled(ctx, c.agg, query, defaultSettleTimeout)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("suggestions did not settle", zap.String("query", query), zap.Error(err))
	}
	if res.Err != nil {
		c.logger.Warn("remote lookup failed", zap.String("query", query), zap.Error(res.Err))
	}
	return printResult(out, res)
}

// waitSettled blocks until the aggregator reports a settled result for query.
// On timeout it returns the current, possibly still loading, result.
func waitSettled(ctx context.Context, agg *suggest.Aggregator, query string, timeout time.Duration) (suggest.Result, error) {
	if timeout <= 0 {
		timeout = defaultSettleTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	query = strings.TrimSpace(query)
	updates := agg.Updates()
	for {
		select {
		case <-ctx.Done():
			return agg.Current(), fmt.Errorf("wait for %q: %w", query, ctx.Err())
		case r, ok := <-updates:
			if !ok {
				return agg.Current(), errAggregatorClosed
			}
			if r.Phase == suggest.PhaseSettled && r.Debounced == query {
				return r, nil
			}
		}
	}
}

func printResult(out io.Writer, res suggest.Result) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, item := range res.Items {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", item.Kind, item.Value, item.Description); err != nil {
			return fmt.Errorf("write suggestions: %w", err)
		}
	}
	return tw.Flush()
}
