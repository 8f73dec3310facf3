package config

import "errors"

var (
	// ErrInvalidMaxPages is returned when the page budget is not positive
	ErrInvalidMaxPages = errors.New("max_pages must be greater than 0")
	// ErrInvalidTimeout is returned when fetch timeout is not greater than 0
	ErrInvalidTimeout = errors.New("fetch_timeout must be greater than 0")
	// ErrInvalidDeadline is returned when the crawl deadline is negative
	ErrInvalidDeadline = errors.New("crawl_deadline cannot be negative")
	// ErrEmptyUserAgent is returned when the user agent is empty
	ErrEmptyUserAgent = errors.New("user_agent cannot be empty")
)
