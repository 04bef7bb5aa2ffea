package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector holds the Prometheus instruments for one credit-stream/cipher
// namespace. A nil *Collector is valid everywhere a *Collector is accepted;
// every method is a no-op on a nil receiver so instrumentation is opt-in.
type Collector struct {
	// credit-flow gauges/counters (CreditStream)
	creditsOutstanding *prometheus.GaugeVec
	bytesPending       *prometheus.GaugeVec
	valuesSentTotal    *prometheus.CounterVec
	acksSentTotal      *prometheus.CounterVec
	workerFaultsTotal  *prometheus.CounterVec
	generateDuration   *prometheus.HistogramVec

	// cipher pipeline counters (CipherPipeline)
	blocksEncryptedTotal *prometheus.CounterVec
	blocksDecryptedTotal *prometheus.CounterVec
	paddingErrorsTotal   *prometheus.CounterVec

	logger *zap.Logger
}

// NewCollector registers a fresh set of instruments under namespace and
// returns a Collector. Call it once per process per namespace; registering
// the same namespace twice against the default registry panics, matching
// promauto's behavior.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.creditsOutstanding = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "credits_outstanding",
			Help:      "Number of ACKs sent by the producer and not yet consumed, per session.",
		},
		[]string{"session"},
	)

	c.bytesPending = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bytes_pending",
			Help:      "Producer-side amount_pending counter converted to data units, per session.",
		},
		[]string{"session"},
	)

	c.valuesSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "values_sent_total",
			Help:      "Total number of values sent on the data channel.",
		},
		[]string{"session"},
	)

	c.acksSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "acks_sent_total",
			Help:      "Total number of ACK messages sent on the data channel.",
		},
		[]string{"session"},
	)

	c.workerFaultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_faults_total",
			Help:      "Total number of generator panics/errors observed by the consumer.",
		},
		[]string{"session"},
	)

	c.generateDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generate_duration_seconds",
			Help:      "Wall-clock time spent inside one Generator.Generate call.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"session"},
	)

	c.blocksEncryptedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cipher_blocks_encrypted_total",
			Help:      "Total number of fixed-size blocks encrypted by EncryptingSink.",
		},
		[]string{"session"},
	)

	c.blocksDecryptedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cipher_blocks_decrypted_total",
			Help:      "Total number of fixed-size blocks decrypted by DecryptingStream.",
		},
		[]string{"session"},
	)

	c.paddingErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cipher_padding_errors_total",
			Help:      "Total number of BadPadding/MalformedCipherStream errors observed.",
		},
		[]string{"session"},
	)

	logger.Info("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// SetCreditsOutstanding records the producer's current acks_outstanding.
func (c *Collector) SetCreditsOutstanding(session string, v int) {
	if c == nil {
		return
	}
	c.creditsOutstanding.WithLabelValues(session).Set(float64(v))
}

// SetBytesPending records the producer's current amount_pending, halved back
// into data units (see the doubling note in creditstream's producer).
func (c *Collector) SetBytesPending(session string, v int) {
	if c == nil {
		return
	}
	c.bytesPending.WithLabelValues(session).Set(float64(v))
}

// IncValuesSent increments the values-sent counter for session.
func (c *Collector) IncValuesSent(session string) {
	if c == nil {
		return
	}
	c.valuesSentTotal.WithLabelValues(session).Inc()
}

// IncAcksSent increments the acks-sent counter for session.
func (c *Collector) IncAcksSent(session string) {
	if c == nil {
		return
	}
	c.acksSentTotal.WithLabelValues(session).Inc()
}

// IncWorkerFaults increments the worker-fault counter for session.
func (c *Collector) IncWorkerFaults(session string) {
	if c == nil {
		return
	}
	c.workerFaultsTotal.WithLabelValues(session).Inc()
}

// ObserveGenerateDuration records how long one Generate call ran.
func (c *Collector) ObserveGenerateDuration(session string, d time.Duration) {
	if c == nil {
		return
	}
	c.generateDuration.WithLabelValues(session).Observe(d.Seconds())
}

// IncBlocksEncrypted increments the encrypted-block counter for session.
func (c *Collector) IncBlocksEncrypted(session string, n int) {
	if c == nil {
		return
	}
	c.blocksEncryptedTotal.WithLabelValues(session).Add(float64(n))
}

// IncBlocksDecrypted increments the decrypted-block counter for session.
func (c *Collector) IncBlocksDecrypted(session string, n int) {
	if c == nil {
		return
	}
	c.blocksDecryptedTotal.WithLabelValues(session).Add(float64(n))
}

// IncPaddingErrors increments the padding-error counter for session.
func (c *Collector) IncPaddingErrors(session string) {
	if c == nil {
		return
	}
	c.paddingErrorsTotal.WithLabelValues(session).Inc()
}
