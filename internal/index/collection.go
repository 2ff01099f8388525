package index

import (
	"context"
	"sort"

	"google.golang.org/api/iterator"

	"github.com/generative-ai-on-aws/summarize-me/internal/errs"
)

// Collection is a handle to a stored collection.
type Collection struct {
	name    string
	backend Backend
}

func (c *Collection) Name() string { return c.name }

// Search runs a nearText query and returns up to limit results, closest first.
func (c *Collection) Search(ctx context.Context, query string, limit int) (*ResultIterator, error) {
	results, err := c.backend.NearText(ctx, c.name, query, limit)
	if err != nil {
		return nil, errs.New(errs.KindIndex, "search", err)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return &ResultIterator{results: results}, nil
}

// ResultIterator yields search results once, in order.
type ResultIterator struct {
	results []SearchResult
	pos     int
}

// Next returns the next result, or iterator.Done when there are no more.
func (it *ResultIterator) Next() (SearchResult, error) {
	if it.pos >= len(it.results) {
		return SearchResult{}, iterator.Done
	}
	r := it.results[it.pos]
	it.pos++
	return r, nil
}

// Len is the number of results not yet returned.
func (it *ResultIterator) Len() int {
	return len(it.results) - it.pos
}
