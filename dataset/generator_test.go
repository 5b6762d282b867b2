package dataset

import (
	"context"
	"image"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-labels/labels"
)

// memorySource is an in-memory Source.
type memorySource struct {
	images      map[int]image.Image
	annotations map[int][]labels.Annotation
}

func (m *memorySource) Image(id int) (image.Image, error) {
	img, ok := m.images[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownImage, "image %d", id)
	}
	return img, nil
}

func (m *memorySource) Annotations(id int) ([]labels.Annotation, error) {
	anns, ok := m.annotations[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownImage, "annotations %d", id)
	}
	return anns, nil
}

func newTestGenerator(t *testing.T, source Source, workers int) *Generator {
	config := labels.DefaultConfig()
	config.PaddedSize = 128
	config.IntersectionThreshold = 0.5
	logger := logs.NewTestingLog(t)
	encoder, err := labels.NewEncoder(config, logger)
	require.NoError(t, err)
	return NewGenerator(source, encoder, workers, logger)
}

func TestGeneratorSample(t *testing.T) {
	source := &memorySource{
		images: map[int]image.Image{
			1: solidImage(100, 80),
			2: solidImage(256, 128), // shrunk by half onto the 128 canvas
		},
		annotations: map[int][]labels.Annotation{
			1: {labels.NewAnnotation(32, 32, 32, 32)},
			2: {labels.NewAnnotation(64, 64, 64, 64)},
		},
	}
	generator := newTestGenerator(t, source, 2)

	sample, err := generator.Sample(1)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 128, 128), sample.Image.Bounds())
	assert.Equal(t, 4, sample.Grid.Rows())
	assert.Equal(t, labels.Slot{Score: 1, CenterX: 0.5, CenterY: 0.5, Width: 1, Height: 1}, sample.Grid.Slot(1, 1))

	sample, err = generator.Sample(2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, sample.Scale.X, 1e-6)
	assert.InDelta(t, 0.5, sample.Scale.Y, 1e-6)
	// The box becomes (32, 32, 32, 32) on the canvas.
	assert.Equal(t, labels.Slot{Score: 1, CenterX: 0.5, CenterY: 0.5, Width: 1, Height: 1}, sample.Grid.Slot(1, 1))

	_, err = generator.Sample(3)
	assert.True(t, errors.Is(err, ErrUnknownImage), "unknown id: %v", err)
}

func TestGeneratorGenerate(t *testing.T) {
	source := &memorySource{
		images:      map[int]image.Image{},
		annotations: map[int][]labels.Annotation{},
	}
	var ids []int
	for id := 0; id < 16; id++ {
		source.images[id] = solidImage(128, 128)
		// Each image's box sits in a different cell: column id%4, row id/4.
		x := float32(id%4) * 32
		y := float32(id/4) * 32
		source.annotations[id] = []labels.Annotation{labels.NewAnnotation(x+8, y+8, 16, 16)}
		ids = append(ids, id)
	}

	generator := newTestGenerator(t, source, 4)
	samples, err := generator.Generate(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, samples, len(ids))

	for i, sample := range samples {
		assert.Equal(t, ids[i], sample.ID, "results keep input order")
		present := sample.Grid.PresentCells(1)
		require.Len(t, present, 1)
		assert.Equal(t, image.Point{X: i % 4, Y: i / 4}, present[0], "sample %d", i)
	}

	// A single worker gives identical grids.
	serial, err := newTestGenerator(t, source, 0).Generate(context.Background(), ids)
	require.NoError(t, err)
	for i := range samples {
		assert.Equal(t, samples[i].Grid.Data(), serial[i].Grid.Data())
	}
}

func TestGeneratorGenerateErrors(t *testing.T) {
	source := &memorySource{
		images:      map[int]image.Image{0: solidImage(10, 10)},
		annotations: map[int][]labels.Annotation{0: nil},
	}
	generator := newTestGenerator(t, source, 2)

	_, err := generator.Generate(context.Background(), []int{0, 5})
	assert.True(t, errors.Is(err, ErrUnknownImage), "missing id fails the run: %v", err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = generator.Generate(ctx, []int{0})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGeneratorWithFrameSource(t *testing.T) {
	annotationsPath, dir := writeFrameDir(t)
	source, err := NewFrameSource(annotationsPath, dir)
	require.NoError(t, err)

	samples, err := newTestGenerator(t, source, 3).Generate(context.Background(), source.IDs())
	require.NoError(t, err)
	require.Len(t, samples, 3)

	// Frame 0: boxes centered at (25, 40) and (110, 110).
	assert.Equal(t, []image.Point{{X: 0, Y: 1}, {X: 3, Y: 3}}, samples[0].Grid.PresentCells(1))
	assert.Empty(t, samples[1].Grid.PresentCells(1))
	assert.Len(t, labels.Decode(samples[2].Grid, labels.DefaultConfig()), 1)
}
