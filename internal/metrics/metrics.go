package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Distribution metrics
var (
	PacksOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePacksOpened,
			Help: HelpTextPacksOpened,
		},
		[]string{LabelShape, LabelPathKind},
	)

	CardsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCardsIssued,
			Help: HelpTextCardsIssued,
		},
		[]string{LabelTier},
	)

	IssueConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameIssueConflicts,
			Help: HelpTextIssueConflicts,
		},
	)

	LotteryFallbackScans = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLotteryFallbacks,
			Help: HelpTextLotteryFallbacks,
		},
	)
)

// Fulfillment metrics
var (
	PurchasesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePurchasesProcessed,
			Help: HelpTextPurchasesProcessed,
		},
		[]string{LabelOutcome},
	)

	MintDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameMintDuration,
			Help:    HelpTextMintDuration,
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	SyncCursorPosition = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameSyncCursorPosition,
			Help: HelpTextSyncCursorPosition,
		},
		[]string{LabelNetwork, LabelContract},
	)

	PollCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePollCycleDuration,
			Help:    HelpTextPollCycleDuration,
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Event bus metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventErrors,
			Help: HelpTextEventErrors,
		},
		[]string{LabelType},
	)
)
