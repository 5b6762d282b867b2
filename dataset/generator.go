package dataset

import (
	"context"
	"image"

	"github.com/cyclopcam/logs"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/nvr-ai/go-labels/images"
	"github.com/nvr-ai/go-labels/labels"
)

// Sample is one training example: the padded image and its label grid.
type Sample struct {
	// ID is the source id of the image.
	ID int
	// Image is the source image fitted onto the padded canvas.
	Image image.Image
	// Scale is the per-axis factor applied to the source image and its boxes.
	Scale images.Point
	// Grid is the encoded training target.
	Grid *labels.Grid
}

// Generator produces samples from a Source.
type Generator struct {
	source  Source
	encoder *labels.Encoder
	workers int
	log     logs.Log
}

// NewGenerator creates a generator. workers < 1 is treated as 1.
func NewGenerator(source Source, encoder *labels.Encoder, workers int, log logs.Log) *Generator {
	if workers < 1 {
		workers = 1
	}
	return &Generator{
		source:  source,
		encoder: encoder,
		workers: workers,
		log:     log,
	}
}

// Sample loads, pads and encodes a single image.
//
// Arguments:
//   - id: The source id.
//
// Returns:
//   - Sample: The padded image and its grid.
//   - error: If the image or annotations cannot be loaded.
func (g *Generator) Sample(id int) (Sample, error) {
	img, err := g.source.Image(id)
	if err != nil {
		return Sample{}, errors.Wrapf(err, "image %d", id)
	}
	annotations, err := g.source.Annotations(id)
	if err != nil {
		return Sample{}, errors.Wrapf(err, "annotations %d", id)
	}

	canvas, scale, err := images.FitToCanvas(img, g.encoder.Config().PaddedSize)
	if err != nil {
		return Sample{}, errors.Wrapf(err, "fitting image %d", id)
	}

	scaled := make([]labels.Annotation, len(annotations))
	for i, a := range annotations {
		scaled[i] = a.Scaled(scale)
	}

	return Sample{
		ID:    id,
		Image: canvas,
		Scale: scale,
		Grid:  g.encoder.Encode(id, scaled),
	}, nil
}

// Generate encodes every id using up to the generator's worker count in
// parallel. Each worker owns the grids it builds, so no coordination is
// needed beyond collecting results.
//
// Arguments:
//   - ctx: Cancels ids not yet started.
//   - ids: The source ids to encode.
//
// Returns:
//   - []Sample: One sample per id, in the same order as ids.
//   - error: The first error encountered; remaining work is abandoned.
func (g *Generator) Generate(ctx context.Context, ids []int) ([]Sample, error) {
	samples := make([]Sample, len(ids))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(g.workers)
	for i, id := range ids {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sample, err := g.Sample(id)
			if err != nil {
				return err
			}
			samples[i] = sample
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if g.log != nil {
		g.log.Infof("Encoded %d samples with %d workers", len(samples), g.workers)
	}
	return samples, nil
}
