package models

import (
	"log"

	"bitbucket.org/ztofreight/quotes_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Quote{}, &QuoteExport{},
		&Quoter{},
		&Template{},
		&FixedTerm{}, &OptionalTerm{},
		&Province{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
