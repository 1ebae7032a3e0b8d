// Package paging turns token-paginated listings into lazy sequences.
package paging

import "iter"

// Fetch returns the items of the page addressed by token and the token of
// the next page. An empty next token marks the last page.
type Fetch[T any] func(token string) (items []T, next string, err error)

// Drain yields every item of every page, fetching pages on demand. A fetch
// error is yielded once and ends the sequence. Each range over the result
// starts again from the first page.
func Drain[T any](fetch Fetch[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		token := ""
		for {
			items, next, err := fetch(token)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
			if next == "" {
				return
			}
			token = next
		}
	}
}

// Collect ranges over seq and returns its items, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var items []T
	for item, err := range seq {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}
