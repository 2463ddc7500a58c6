package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions per message
// path and result code, and measures how long it took to process them.
type Metrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ custody.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator. All collectors are registered
// with given registerer.
func NewMetrics(reg prometheus.Registerer) (Metrics, error) {
	m := Metrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "custody",
			Name:      "tx_total",
			Help:      "Number of processed transactions.",
		}, []string{"phase", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "custody",
			Name:      "tx_duration_seconds",
			Help:      "Transaction processing time.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"phase", "path"}),
	}
	for _, c := range []prometheus.Collector{m.total, m.duration} {
		if err := reg.Register(c); err != nil {
			return Metrics{}, errors.Wrap(errors.ErrHuman, err.Error())
		}
	}
	return m, nil
}

func (m Metrics) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", custody.GetPath(tx), start, err)
	return res, err
}

func (m Metrics) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", custody.GetPath(tx), start, err)
	return res, err
}

func (m Metrics) observe(phase, path string, start time.Time, err error) {
	code, _ := errors.ABCIInfo(err, false)
	m.total.WithLabelValues(phase, path, strconv.FormatUint(uint64(code), 10)).Inc()
	m.duration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}
