package dataset

import (
	"bytes"
	"encoding/json"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp" // register decoder

	"github.com/nvr-ai/go-labels/labels"
	"github.com/nvr-ai/go-labels/util"
)

// FrameSource serves video frames extracted to a directory together with the
// per-frame annotations written by a detector-based labeller.
//
// The annotation file is a JSON array indexed by frame number, each entry an
// array of {"bbox": [x, y, w, h], "score": s, "index": i} objects.
type FrameSource struct {
	// MinScore drops annotations whose Score is below it. Zero keeps all.
	MinScore float32

	frames      map[int]util.ImageFile
	annotations [][]labels.Annotation
}

// NewFrameSource loads an annotation file and indexes the frame images in a
// directory.
//
// Arguments:
//   - annotationsPath: Path to the per-frame annotation JSON file.
//   - imageDir: Directory of "frame-<n>.<ext>" images.
//
// Returns:
//   - *FrameSource: The source.
//   - error: If either input cannot be read.
//
// @example
//
//	source, err := NewFrameSource("clip.json", "frames/")
//	source.MinScore = 0.8
//	generator := NewGenerator(source, encoder, 4, logger)
func NewFrameSource(annotationsPath, imageDir string) (*FrameSource, error) {
	f, err := os.Open(annotationsPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening annotations")
	}
	defer f.Close()

	annotations, err := ReadFrameAnnotations(f)
	if err != nil {
		return nil, errors.Wrapf(err, "annotations %s", annotationsPath)
	}

	files, err := util.ListFrameFiles(imageDir)
	if err != nil {
		return nil, err
	}
	frames := make(map[int]util.ImageFile, len(files))
	for _, file := range files {
		frames[file.Frame] = file
	}

	return &FrameSource{
		frames:      frames,
		annotations: annotations,
	}, nil
}

// ReadFrameAnnotations decodes a per-frame annotation array.
func ReadFrameAnnotations(r io.Reader) ([][]labels.Annotation, error) {
	var annotations [][]labels.Annotation
	if err := json.NewDecoder(r).Decode(&annotations); err != nil {
		return nil, errors.Wrap(err, "decoding frame annotations")
	}
	return annotations, nil
}

// IDs lists, in ascending order, the frames that have both an image and an
// annotation entry.
func (s *FrameSource) IDs() []int {
	ids := make([]int, 0, len(s.frames))
	for frame := range s.frames {
		if frame >= 0 && frame < len(s.annotations) {
			ids = append(ids, frame)
		}
	}
	sort.Ints(ids)
	return ids
}

// Image decodes the frame image for id.
func (s *FrameSource) Image(id int) (image.Image, error) {
	file, ok := s.frames[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownImage, "no image for frame %d", id)
	}
	data, err := file.Read()
	if err != nil {
		return nil, err
	}

	var img image.Image
	if strings.EqualFold(filepath.Ext(file.Path), ".webp") {
		img, err = webp.Decode(bytes.NewReader(data))
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding frame %d", id)
	}
	return img, nil
}

// Annotations returns the annotations of frame id with Score >= MinScore.
func (s *FrameSource) Annotations(id int) ([]labels.Annotation, error) {
	if id < 0 || id >= len(s.annotations) {
		return nil, errors.Wrapf(ErrUnknownImage, "no annotations for frame %d", id)
	}

	kept := make([]labels.Annotation, 0, len(s.annotations[id]))
	for _, a := range s.annotations[id] {
		if a.Score >= s.MinScore {
			kept = append(kept, a)
		}
	}
	return kept, nil
}
