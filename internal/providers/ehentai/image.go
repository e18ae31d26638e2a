package ehentai

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/brogergvhs/galleryd/internal/chain"
	"github.com/brogergvhs/galleryd/internal/providers"
)

const imageSelector = "img#img"

// resolveImage loads one image page and returns its full-size image as
// served. A page without the image element yields an empty Image rather
// than an error so page count and order survive.
func (r *Repository) resolveImage(ctx context.Context, pageURL string) (providers.Image, error) {
	doc, err := r.fetch(ctx, pageURL)
	if err != nil {
		return providers.Image{}, err
	}

	src, _ := doc.Find(imageSelector).Attr("src")
	if src == "" {
		r.log.Warnf("no image on %s\n", pageURL)
		return providers.Image{}, nil
	}

	return providers.Image{URI: src}, nil
}

// loadImages resolves image pages one after another, preserving order.
func (r *Repository) loadImages(ctx context.Context, pageURLs []string) ([]providers.Image, error) {
	tasks := lo.Map(pageURLs, func(u string, _ int) chain.Task[providers.Image] {
		return func(ctx context.Context) (providers.Image, error) {
			return r.resolveImage(ctx, u)
		}
	})

	images, err := chain.Collect(ctx, tasks, r.chainOptions()...)
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}
	if images == nil {
		images = []providers.Image{}
	}

	return images, nil
}
