package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/navid-fn/hotelradar/internal/model"
	"github.com/navid-fn/hotelradar/pkg/faulttolerance"
)

// Index selects the sort ordering of a partition.
type Index int

const (
	// IndexPrimary orders by scraped_date#hotel_id#checkin_date#checkout_date.
	IndexPrimary Index = iota

	// IndexByCheckin orders by checkin_date#scraped_date#hotel_id#checkout_date,
	// for scans that fix a checkin date and range over scrape dates.
	IndexByCheckin
)

// Filter narrows a range scan by exact attribute match after the key scan,
// before records are returned. Nil fields mean no constraint.
type Filter struct {
	BreakfastIncluded *bool
	FreeCancellation  *bool
}

func (f Filter) matches(o model.Observation) bool {
	if f.BreakfastIncluded != nil && o.BreakfastIncluded != *f.BreakfastIncluded {
		return false
	}
	if f.FreeCancellation != nil && o.FreeCancellation != *f.FreeCancellation {
		return false
	}
	return true
}

// PriceRepository is the read-side client of the hotel price store.
type PriceRepository interface {
	// RangeQuery scans one partition over the inclusive lexicographic
	// sort-key range [lo, hi], following pagination to exhaustion.
	// A transport failure returns a nil slice and a non-nil error so
	// callers can tell a store error apart from a legitimately empty
	// result set.
	RangeQuery(ctx context.Context, partitionKey, lo, hi string, filter Filter, index Index) ([]model.Observation, error)

	Ping(ctx context.Context) error
}

type redisPriceRepository struct {
	rdb      *redis.Client
	logger   *logrus.Logger
	retryer  *faulttolerance.Retryer
	pageSize int
}

// NewRedisPriceRepository creates a price repository over Redis. Each
// partition is a sorted set of composite sort keys (score 0, so ZRANGEBYLEX
// is a pure lexicographic range scan) plus a hash holding the record JSON
// keyed by primary sort key.
func NewRedisPriceRepository(rdb *redis.Client, logger *logrus.Logger, pageSize int) PriceRepository {
	if pageSize <= 0 {
		pageSize = 500
	}
	return &redisPriceRepository{
		rdb:      rdb,
		logger:   logger,
		retryer:  faulttolerance.NewRetryer(faulttolerance.DefaultRetryConfig("PriceStore"), logger),
		pageSize: pageSize,
	}
}

func (r *redisPriceRepository) RangeQuery(ctx context.Context, partitionKey, lo, hi string, filter Filter, index Index) ([]model.Observation, error) {
	idxKey := indexKey(partitionKey, index)
	dataKey := "prices:data:" + partitionKey

	var results []model.Observation
	offset := int64(0)

	for {
		var members []string
		err := r.retryer.Execute(ctx, func() error {
			var scanErr error
			members, scanErr = r.rdb.ZRangeByLex(ctx, idxKey, &redis.ZRangeBy{
				Min:    "[" + lo,
				Max:    "[" + hi,
				Offset: offset,
				Count:  int64(r.pageSize),
			}).Result()
			return scanErr
		})
		if err != nil {
			return nil, fmt.Errorf("price store range scan %s: %w", partitionKey, err)
		}
		if len(members) == 0 {
			break
		}

		fields := make([]string, 0, len(members))
		for _, m := range members {
			pk, ok := primarySortKey(m, index)
			if !ok {
				r.logger.Warnf("Skipping malformed index member %q in %s", m, idxKey)
				continue
			}
			fields = append(fields, pk)
		}

		if len(fields) > 0 {
			var values []interface{}
			err = r.retryer.Execute(ctx, func() error {
				var getErr error
				values, getErr = r.rdb.HMGet(ctx, dataKey, fields...).Result()
				return getErr
			})
			if err != nil {
				return nil, fmt.Errorf("price store fetch %s: %w", partitionKey, err)
			}

			for _, v := range values {
				raw, ok := v.(string)
				if !ok {
					// index member without a record body; tolerate
					continue
				}
				obs := model.ObservationFromJSON([]byte(raw))
				if filter.matches(obs) {
					results = append(results, obs)
				}
			}
		}

		offset += int64(len(members))
		if len(members) < r.pageSize {
			break
		}
	}

	return results, nil
}

func (r *redisPriceRepository) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func indexKey(partitionKey string, index Index) string {
	if index == IndexByCheckin {
		return "prices:idx2:" + partitionKey
	}
	return "prices:idx:" + partitionKey
}

// primarySortKey maps an index member to the primary sort key that
// addresses the record body. Secondary members carry the same four
// components reordered (checkin#scraped#hotel#checkout).
func primarySortKey(member string, index Index) (string, bool) {
	if index == IndexPrimary {
		return member, true
	}
	parts := strings.SplitN(member, "#", 4)
	if len(parts) != 4 {
		return "", false
	}
	return model.SortKey(parts[1], parts[2], parts[0], parts[3]), true
}
