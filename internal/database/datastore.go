package database

// DataStore defines the unified interface for all data operations needed
// by the services. This interface is composed of smaller, domain-specific
// interfaces; consumers can depend on the smaller ones (e.g. EntryRepository,
// StatsRepository) for better testability and clearer dependencies.
type DataStore interface {
	UserRepository
	TokenRepository
	EntryRepository
	LabelRepository
	StatsRepository
}
