package main

import (
	"github.com/rs/zerolog/log"

	"github.com/lci-upiiz/adivina-planeta/assets"
	"github.com/lci-upiiz/adivina-planeta/internal/journal"
)

// openJournal opens the SQLite file at path, applies the embedded
// migrations and returns the journal plus a close func for main to defer.
func openJournal(path string) (*journal.Store, func(), error) {
	db, err := journal.Open(path)
	if err != nil {
		return nil, nil, err
	}
	migrations, err := assets.Migrations()
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := journal.Migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("close journal db")
		}
	}
	return journal.NewStore(db), closeDB, nil
}
