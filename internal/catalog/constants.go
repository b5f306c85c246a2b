package catalog

// Error message formats
const (
	ErrMsgReadConfigFileFailed = "failed to read catalog file: %w"
	ErrMsgParseConfigFailed    = "failed to parse catalog: %w"
	ErrMsgConfigNil            = "config is nil"
	ErrMsgNoCardsDefined       = "no cards defined"

	ErrFmtCardAtIndexEmpty  = "%w: card at index %d has empty name"
	ErrFmtCardInvalidSeason = "%w: card '%s' has invalid season %d"
	ErrFmtCardInvalidTier   = "%w: card '%s' has tier %d outside valid range"
	ErrFmtCardInvalidRole   = "%w: card '%s' has unknown role '%s'"
)
