package main

import (
	"framerec/internal/contracts"
	"framerec/internal/database/db"
	"framerec/internal/database/repo"
)

// openStore opens the recorder database and its stores.
func openStore(dbPath string) (contracts.Store, func() error, error) {
	database, err := db.InitDB(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return repo.InitStores(database.DB), database.Close, nil
}
