package sqlite

import (
	"database/sql"

	"github.com/sandevgo/memobot/internal/core"
)

// Store is the SQLite backed core.FactStore.
type Store struct {
	*TranscriptRepo
	*AttributeRepo
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		TranscriptRepo: NewTranscriptRepo(db),
		AttributeRepo:  NewAttributeRepo(db),
	}
}

var _ core.FactStore = (*Store)(nil)
