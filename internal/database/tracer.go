package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// multiTracer fans pgx query tracing out to several tracers, since
// ConnConfig has a single Tracer slot.
type multiTracer struct {
	tracers []any
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

type slowQueryStartKey struct{}

type slowQueryStart struct {
	sql     string
	startAt time.Time
}

// slowQueryTracer logs a warning for every query that runs longer than
// threshold.
type slowQueryTracer struct {
	logger    *zerolog.Logger
	threshold time.Duration
	now       func() time.Time
}

func newSlowQueryTracer(logger *zerolog.Logger, threshold time.Duration) *slowQueryTracer {
	return &slowQueryTracer{logger: logger, threshold: threshold, now: time.Now}
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, slowQueryStartKey{}, slowQueryStart{sql: data.SQL, startAt: t.now()})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(slowQueryStartKey{}).(slowQueryStart)
	if !ok {
		return
	}

	elapsed := t.now().Sub(start.startAt)
	if elapsed < t.threshold {
		return
	}

	event := t.logger.Warn().
		Str("sql", start.sql).
		Dur("duration", elapsed).
		Dur("threshold", t.threshold).
		Str("command_tag", data.CommandTag.String())
	if data.Err != nil {
		event = event.Err(data.Err)
	}
	event.Msg("slow query")
}
