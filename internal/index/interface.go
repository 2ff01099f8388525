package index

import "context"

// Index stores meeting videos in a multimodal collection and searches them by text.
type Index interface {
	Ingest(ctx context.Context, videoPath string) (*Collection, error)
	Open(name string) *Collection
	Ready(ctx context.Context) error
}

// Backend is the subset of vector store operations the index needs.
type Backend interface {
	CollectionExists(ctx context.Context, name string) (bool, error)
	DeleteCollection(ctx context.Context, name string) error
	CreateCollection(ctx context.Context, name string) error
	Insert(ctx context.Context, name string, item Item) error
	CountByMediaType(ctx context.Context, name string) (map[string]int, error)
	List(ctx context.Context, name string) ([]Item, error)
	NearText(ctx context.Context, name, query string, limit int) ([]SearchResult, error)
	Ready(ctx context.Context) (bool, error)
}

// Item is one stored media object. Video holds the base64 payload.
type Item struct {
	Name      string
	Path      string
	MediaType string
	Timestamp string
	Video     string
}

// SearchResult is one nearText hit.
type SearchResult struct {
	Name      string
	Path      string
	MediaType string
	Video     string
	Distance  float64
}

// Similarity is 1 - Distance.
func (r SearchResult) Similarity() float64 {
	return 1 - r.Distance
}
