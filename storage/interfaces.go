package storage

import "rental-miner/models"

// RuleWriter is the interface any rule export backend must satisfy.
type RuleWriter interface {
	WriteRules(rules []*models.AssociationRule) error
	Close() error
}

// ListingStore persists prepared listings between cleaning and mining.
type ListingStore interface {
	WriteListings(records []*models.PreparedRecord) error
	FetchListings() ([]*models.PreparedRecord, error)
	Close() error
}
