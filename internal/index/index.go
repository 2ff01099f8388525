package index

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/generative-ai-on-aws/summarize-me/internal/errs"
	"github.com/generative-ai-on-aws/summarize-me/internal/filestore"
)

const timestampLayout = "2006-01-02 15:04:05"

// Ingest prepares the collection, stores the video and any configured fixtures,
// then logs the collection contents.
func (x *implIndex) Ingest(ctx context.Context, videoPath string) (*Collection, error) {
	name := x.cfg.Collection

	// Read the payload first so a bad file never wipes the existing collection.
	payload, err := filestore.ReadBase64(videoPath)
	if err != nil {
		return nil, errs.New(errs.KindIndex, "read video", err)
	}

	fixtures, err := fixtureItems(x.cfg.Fixtures)
	if err != nil {
		return nil, err
	}

	if err := x.prepare(ctx, name); err != nil {
		return nil, errs.New(errs.KindIndex, "prepare collection", err)
	}

	item := Item{
		Name:      "video",
		Path:      videoPath,
		MediaType: "video",
		Timestamp: x.now().UTC().Format(timestampLayout),
		Video:     payload,
	}
	if err := x.backend.Insert(ctx, name, item); err != nil {
		return nil, errs.New(errs.KindIndex, "insert video", err)
	}
	x.logger.Info(ctx, "Inserted video object into the vector store: %s", videoPath)

	if len(fixtures) > 0 {
		if err := insertAll(ctx, x.backend, name, fixtures); err != nil {
			return nil, err
		}
		x.logger.Info(ctx, "Inserted %d fixture objects into the vector store", len(fixtures))
	}

	if err := x.diagnostics(ctx, name); err != nil {
		return nil, errs.New(errs.KindIndex, "diagnostics", err)
	}

	return &Collection{name: name, backend: x.backend}, nil
}

// Open attaches to an existing collection without modifying it.
func (x *implIndex) Open(name string) *Collection {
	if name == "" {
		name = x.cfg.Collection
	}
	return &Collection{name: name, backend: x.backend}
}

// Ready reports whether the vector store accepts requests.
func (x *implIndex) Ready(ctx context.Context) error {
	ok, err := x.backend.Ready(ctx)
	if err != nil {
		return errs.New(errs.KindIndex, "ready", err)
	}
	if !ok {
		return errs.Newf(errs.KindIndex, "ready", "vector store at %s is not ready", x.cfg.Host)
	}
	return nil
}

func (x *implIndex) prepare(ctx context.Context, name string) error {
	exists, err := x.backend.CollectionExists(ctx, name)
	if err != nil {
		return err
	}
	if exists && !x.cfg.ResetOnIngest() {
		return nil
	}
	if exists {
		x.logger.Info(ctx, "Deleting existing collection %s", name)
		if err := x.backend.DeleteCollection(ctx, name); err != nil {
			return err
		}
	}
	return x.backend.CreateCollection(ctx, name)
}

func (x *implIndex) diagnostics(ctx context.Context, name string) error {
	counts, err := x.backend.CountByMediaType(ctx, name)
	if err != nil {
		return err
	}
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		x.logger.Info(ctx, "Group mediaType=%s count=%d", t, counts[t])
	}

	items, err := x.backend.List(ctx, name)
	if err != nil {
		return err
	}
	for _, item := range items {
		x.logger.Info(ctx, "Object name=%s mediaType=%s", item.Name, item.MediaType)
	}
	return nil
}

// LoadFixtures inserts seed media files into the named collection.
func LoadFixtures(ctx context.Context, backend Backend, collection string, paths []string) error {
	items, err := fixtureItems(paths)
	if err != nil {
		return err
	}
	return insertAll(ctx, backend, collection, items)
}

func fixtureItems(paths []string) ([]Item, error) {
	items := make([]Item, 0, len(paths))
	for _, p := range paths {
		payload, err := filestore.ReadBase64(p)
		if err != nil {
			return nil, errs.New(errs.KindIndex, "load fixture", err)
		}
		items = append(items, Item{
			Name:      "video",
			Path:      p,
			MediaType: mediaType(p),
			Video:     payload,
		})
	}
	return items, nil
}

func insertAll(ctx context.Context, backend Backend, collection string, items []Item) error {
	for _, item := range items {
		if err := backend.Insert(ctx, collection, item); err != nil {
			return errs.New(errs.KindIndex, "load fixture", fmt.Errorf("insert %s: %w", item.Path, err))
		}
	}
	return nil
}

func mediaType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".wav", ".flac", ".ogg", ".m4a", ".amr":
		return "audio"
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return "image"
	default:
		return "video"
	}
}
