package quran

import "fmt"

// FetchError reports a request to the quran.com API that did not succeed,
// either because the transport failed or because of a non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("quran api returned status %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a response whose body lacks the field we asked for.
type ParseError struct {
	URL   string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to decode %s from %s: %v", e.Field, e.URL, e.Err)
	}
	return fmt.Sprintf("response from %s is missing %s", e.URL, e.Field)
}

func (e *ParseError) Unwrap() error { return e.Err }
