package assistant

// PendingReminderDraft holds a reminder whose trigger was detected but whose
// time could not be resolved. It lives in the session bag until the owner
// supplies a time or cancels.
type PendingReminderDraft struct {
	// RawText is the utterance as received.
	RawText string
	// NormalizedText is the lowercased, trimmed form used for matching.
	NormalizedText string
	// OriginalText is the residual subject after trigger stripping; this is
	// what the reminder will say.
	OriginalText string
}
