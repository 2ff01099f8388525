package index

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const (
	vectorizer      = "multi2vec-bind"
	defaultPageSize = 100
)

// WeaviateBackend implements Backend on a Weaviate instance.
type WeaviateBackend struct {
	client   *weaviate.Client
	pageSize int
}

// NewWeaviateBackend connects to the Weaviate instance at scheme://host.
func NewWeaviateBackend(host, scheme string) (*WeaviateBackend, error) {
	client, err := weaviate.NewClient(weaviate.Config{Host: host, Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}
	return &WeaviateBackend{client: client, pageSize: defaultPageSize}, nil
}

func (b *WeaviateBackend) CollectionExists(ctx context.Context, name string) (bool, error) {
	return b.client.Schema().ClassExistenceChecker().WithClassName(name).Do(ctx)
}

func (b *WeaviateBackend) DeleteCollection(ctx context.Context, name string) error {
	return b.client.Schema().ClassDeleter().WithClassName(name).Do(ctx)
}

// CreateCollection creates the multimodal schema: the video blob and timestamp text are vectorized.
func (b *WeaviateBackend) CreateCollection(ctx context.Context, name string) error {
	class := &models.Class{
		Class:      name,
		Vectorizer: vectorizer,
		ModuleConfig: map[string]interface{}{
			vectorizer: map[string]interface{}{
				"textFields":  []string{"timestamp"},
				"videoFields": []string{"video"},
			},
		},
		Properties: []*models.Property{
			{Name: "timestamp", DataType: []string{"text"}},
			{Name: "video", DataType: []string{"blob"}},
			{Name: "name", DataType: []string{"text"}},
			{Name: "path", DataType: []string{"text"}},
			{Name: "mediaType", DataType: []string{"text"}},
		},
	}
	return b.client.Schema().ClassCreator().WithClass(class).Do(ctx)
}

func (b *WeaviateBackend) Insert(ctx context.Context, name string, item Item) error {
	props := map[string]interface{}{
		"name":      item.Name,
		"path":      item.Path,
		"mediaType": item.MediaType,
		"video":     item.Video,
	}
	if item.Timestamp != "" {
		props["timestamp"] = item.Timestamp
	}
	_, err := b.client.Data().Creator().WithClassName(name).WithProperties(props).Do(ctx)
	return err
}

func (b *WeaviateBackend) CountByMediaType(ctx context.Context, name string) (map[string]int, error) {
	resp, err := b.client.GraphQL().Aggregate().
		WithClassName(name).
		WithGroupBy("mediaType").
		WithFields(
			graphql.Field{Name: "meta", Fields: []graphql.Field{{Name: "count"}}},
			graphql.Field{Name: "groupedBy", Fields: []graphql.Field{{Name: "value"}}},
		).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if err := graphQLError(resp); err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, g := range rows(resp, "Aggregate", name) {
		value := str(nested(g, "groupedBy")["value"])
		count, ok := number(nested(g, "meta")["count"])
		if !ok {
			return nil, fmt.Errorf("aggregate group %q has no numeric meta.count", value)
		}
		counts[value] = int(count)
	}
	return counts, nil
}

// List pages through every object with a cursor.
func (b *WeaviateBackend) List(ctx context.Context, name string) ([]Item, error) {
	var items []Item
	after := ""
	for {
		getter := b.client.Data().ObjectsGetter().WithClassName(name).WithLimit(b.pageSize)
		if after != "" {
			getter = getter.WithAfter(after)
		}
		objs, err := getter.Do(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range objs {
			props, _ := obj.Properties.(map[string]interface{})
			items = append(items, Item{
				Name:      str(props["name"]),
				Path:      str(props["path"]),
				MediaType: str(props["mediaType"]),
				Timestamp: str(props["timestamp"]),
			})
		}
		if len(objs) < b.pageSize {
			return items, nil
		}

		next := objs[len(objs)-1].ID.String()
		if next == "" || next == after {
			return nil, fmt.Errorf("list %s: cursor did not advance past %q", name, after)
		}
		after = next
	}
}

func (b *WeaviateBackend) NearText(ctx context.Context, name, query string, limit int) ([]SearchResult, error) {
	nearText := b.client.GraphQL().NearTextArgBuilder().WithConcepts([]string{query})

	resp, err := b.client.GraphQL().Get().
		WithClassName(name).
		WithFields(
			graphql.Field{Name: "name"},
			graphql.Field{Name: "path"},
			graphql.Field{Name: "mediaType"},
			graphql.Field{Name: "video"},
			graphql.Field{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}}},
		).
		WithNearText(nearText).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if err := graphQLError(resp); err != nil {
		return nil, err
	}

	var results []SearchResult
	for _, row := range rows(resp, "Get", name) {
		distance, ok := number(nested(row, "_additional")["distance"])
		if !ok {
			return nil, fmt.Errorf("search result %q has no distance", str(row["path"]))
		}
		results = append(results, SearchResult{
			Name:      str(row["name"]),
			Path:      str(row["path"]),
			MediaType: str(row["mediaType"]),
			Video:     str(row["video"]),
			Distance:  distance,
		})
	}
	return results, nil
}

func (b *WeaviateBackend) Ready(ctx context.Context) (bool, error) {
	return b.client.Misc().ReadyChecker().Do(ctx)
}

func graphQLError(resp *models.GraphQLResponse) error {
	if resp == nil || len(resp.Errors) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("graphql: %s", strings.Join(msgs, "; "))
}

// rows extracts data.<op>.<class> as a list of objects.
func rows(resp *models.GraphQLResponse, op, class string) []map[string]interface{} {
	byClass, _ := resp.Data[op].(map[string]interface{})
	list, _ := byClass[class].([]interface{})
	out := make([]map[string]interface{}, 0, len(list))
	for _, v := range list {
		if m, ok := v.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

func nested(m map[string]interface{}, key string) map[string]interface{} {
	v, _ := m[key].(map[string]interface{})
	return v
}

// number accepts the numeric shapes a decoded GraphQL value can take.
func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}
