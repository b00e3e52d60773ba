package core

import "context"

type TranscriptRepository interface {
	RecordTurn(ctx context.Context, userID, userMessage, botResponse string) (TranscriptEntry, error)
	AllTurns(ctx context.Context, userID string) ([]TranscriptEntry, error)
	RecentTurns(ctx context.Context, userID string, limit int) ([]TranscriptEntry, error)
}

type AttributeRepository interface {
	RecordAttribute(ctx context.Context, userID, name, value string) error
	// LookupAttribute returns found == false when no row exists for name.
	LookupAttribute(ctx context.Context, userID, name string) (value string, found bool, err error)
}

// FactStore is the durable memory of the bot: declared attributes plus the transcript.
type FactStore interface {
	TranscriptRepository
	AttributeRepository
}
