package util

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FramePrefix is the file name prefix of extracted video frames, as in
// "frame-12.jpg".
const FramePrefix = "frame-"

// ImageFile represents an image file extracted from a video.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Frame is the frame number parsed from the file name.
	Frame int
}

// Read returns the raw bytes of the image file.
func (f ImageFile) Read() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading frame %d", f.Frame)
	}
	return data, nil
}

// ListFrameFiles finds all frame image files in a directory.
//
// Arguments:
// - dir: Directory path containing "frame-<n>.<ext>" image files.
//
// Returns:
// - []ImageFile: The files ordered by frame number.
// - error: If the directory cannot be read or an image name has no frame number.
func ListFrameFiles(dir string) ([]ImageFile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing frames in %s", dir)
	}

	var images []ImageFile
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		ext := filepath.Ext(file.Name())
		switch strings.ToLower(ext) {
		case ".jpg", ".jpeg", ".png", ".bmp", ".webp":
			frame, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(file.Name(), FramePrefix), ext))
			if err != nil {
				return nil, errors.Wrapf(err, "frame number of %s", file.Name())
			}
			images = append(images, ImageFile{
				Path:  filepath.Join(dir, file.Name()),
				Frame: frame,
			})
		}
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Frame < images[j].Frame
	})

	return images, nil
}
