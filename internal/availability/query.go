// Package availability turns a picked date into an asynchronous room
// availability lookup against whichever backend is configured.
package availability

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/libroom/internal/calendar"
	"github.com/five82/libroom/internal/command"
	"github.com/five82/libroom/internal/crawler"
	"github.com/five82/libroom/internal/source"
)

// Querier dispatches lookups. Command serves the embedded backend; Now
// defaults to time.Now and Logger to a no-op logger.
type Querier struct {
	Command command.Invoker
	Now     func() time.Time
	Logger  *zap.Logger
}

// Query starts a lookup for date and returns its Future. It returns nil,
// without contacting any backend, when date falls before today, when src is
// a crawling server, or when src is disabled or nil. groupSize is forwarded
// unchanged.
func (q *Querier) Query(ctx context.Context, src source.DataSource, date time.Time, groupSize int) *Future {
	logger := q.logger()
	offset := calendar.DayOffset(date, q.now())
	if offset < 0 {
		logger.Debug("date in the past, not querying",
			zap.Time("date", date),
			zap.Int("days_from_today", offset),
		)
		return nil
	}

	switch ds := src.(type) {
	case source.EmbeddedCommand:
		return q.invoke(ctx, calendar.DateKey(date), offset, groupSize)
	case source.RemoteCrawler:
		c := crawler.FromSource(ds)
		if _, err := c.AvailableRooms(ctx, offset, groupSize); err != nil {
			logger.Debug("crawling server lookup unavailable",
				zap.String("addr", c.Addr()),
				zap.Int("days_from_today", offset),
				zap.Error(err),
			)
		}
		return nil
	default:
		logger.Debug("data source disabled", zap.Int("days_from_today", offset))
		return nil
	}
}

func (q *Querier) invoke(ctx context.Context, key int64, offset, groupSize int) *Future {
	future, settle := NewFuture(key, offset)
	logger := q.logger().With(zap.String("query_id", future.ID()))
	inv := q.Command
	if inv == nil {
		logger.Warn("embedded command not configured")
		settle(nil, &command.CommandError{Op: "invoke", Err: command.ErrNoCommand})
		return future
	}

	logger.Info("availability query started",
		zap.Int("days_from_today", offset),
		zap.Int("group_size", groupSize),
	)
	go func() {
		rooms, err := inv.Invoke(ctx, offset, groupSize)
		if err != nil {
			err = command.Wrap("invoke", err)
			logger.Warn("availability query failed", zap.Error(err))
			settle(nil, err)
			return
		}
		logger.Info("availability query finished", zap.Int("rooms", len(rooms)))
		settle(rooms, nil)
	}()
	return future
}

// InPast reports whether date falls on a day before today.
func (q *Querier) InPast(date time.Time) bool {
	return calendar.DayOffset(date, q.now()) < 0
}

func (q *Querier) now() time.Time {
	if q.Now != nil {
		return q.Now()
	}
	return time.Now()
}

func (q *Querier) logger() *zap.Logger {
	if q.Logger != nil {
		return q.Logger
	}
	return zap.NewNop()
}
