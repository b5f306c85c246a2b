package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "packforge_http_requests_total"
	MetricNameHTTPRequestDuration  = "packforge_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "packforge_http_requests_in_flight"

	MetricNamePacksOpened        = "packforge_packs_opened_total"
	MetricNameCardsIssued        = "packforge_cards_issued_total"
	MetricNameIssueConflicts     = "packforge_issue_conflicts_total"
	MetricNameLotteryFallbacks   = "packforge_lottery_fallback_scans_total"
	MetricNamePurchasesProcessed = "packforge_purchases_processed_total"
	MetricNameMintDuration       = "packforge_mint_duration_seconds"
	MetricNameSyncCursorPosition = "packforge_sync_cursor_position"
	MetricNamePollCycleDuration  = "packforge_poll_cycle_duration_seconds"
	MetricNameEventsPublished    = "packforge_events_published_total"
	MetricNameEventErrors        = "packforge_event_handler_errors_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently in flight"

	HelpTextPacksOpened        = "Packs opened, by shape and path"
	HelpTextCardsIssued        = "Cards issued into the uniqueness ledger, by tier"
	HelpTextIssueConflicts     = "Ledger issue attempts rejected as already issued"
	HelpTextLotteryFallbacks   = "Lottery draws that fell back past the requested tier"
	HelpTextPurchasesProcessed = "On-chain purchases processed, by final status"
	HelpTextMintDuration       = "Latency of external mint calls in seconds"
	HelpTextSyncCursorPosition = "Last fully processed event-log position per contract"
	HelpTextPollCycleDuration  = "Latency of one fulfillment poll cycle in seconds"
	HelpTextEventsPublished    = "Events published on the internal bus"
	HelpTextEventErrors        = "Event handler failures"
)

// Label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelShape    = "shape"
	LabelPathKind = "source"
	LabelTier     = "tier"
	LabelOutcome  = "status"
	LabelNetwork  = "network"
	LabelContract = "contract"
	LabelType     = "type"
)

// Label values for the pack-open source
const (
	SourceDirect   = "direct"
	SourceListener = "listener"
)
