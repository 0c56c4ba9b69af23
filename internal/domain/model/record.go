package model

// Row is a single record returned by a store routine.
type Row map[string]any

// MutationResult is returned by mutating store routines.
type MutationResult struct {
	Rows     []Row
	Advisory string
}

// Page bounds a listing.
type Page struct {
	Limit  int
	Offset int
}

// OrderFilter sorts and pages the order listing.
type OrderFilter struct {
	Column    string
	Direction string
	Page
}

// OrderSearch pages a free-text order search.
type OrderSearch struct {
	Term string
	Page
}
