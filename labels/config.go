// Package labels - Encodes bounding-box annotations into YOLO-style grid targets.
package labels

import (
	"os"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned (wrapped) for any configuration that cannot
// produce a valid grid.
var ErrInvalidConfig = errors.New("invalid label config")

// Config defines how a padded image is partitioned into cells and how
// presence is scored.
type Config struct {
	// CellWidth is the width of one grid cell in pixels.
	CellWidth int `json:"cell_width" yaml:"cell_width"`
	// CellHeight is the height of one grid cell in pixels.
	CellHeight int `json:"cell_height" yaml:"cell_height"`
	// PaddedSize is the square canvas size every image is normalized to.
	PaddedSize int `json:"padded_size" yaml:"padded_size"`
	// IntersectionThreshold is the coverage, in cell units, a box must exceed
	// in a neighbouring cell for that cell to be marked present.
	IntersectionThreshold float32 `json:"intersection_threshold" yaml:"intersection_threshold"`
	// NoObjectWeight is the score of cells without an object.
	NoObjectWeight float32 `json:"no_object_weight" yaml:"no_object_weight"`
	// HasObjectWeight is the score of cells with an object.
	HasObjectWeight float32 `json:"has_object_weight" yaml:"has_object_weight"`
}

// DefaultConfig returns the configuration used for 640x640 training canvases.
//
// Returns:
//   - Config: 32x32 pixel cells, 0.7 threshold, 0/1 weights.
//
// @example
// config := DefaultConfig()
// config.IntersectionThreshold = 0.5
// encoder, err := NewEncoder(config, logger)
func DefaultConfig() Config {
	return Config{
		CellWidth:             32,
		CellHeight:            32,
		PaddedSize:            640,
		IntersectionThreshold: 0.7,
		NoObjectWeight:        0,
		HasObjectWeight:       1,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates the
// result. Fields missing from the file keep their default value.
//
// Arguments:
//   - path: Path to the YAML file.
//
// Returns:
//   - Config: The merged configuration.
//   - error: If the file cannot be read or parsed, or the result is invalid.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrapf(err, "reading label config %s", path)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "parsing label config %s", path)
	}
	if err := config.Validate(); err != nil {
		return config, errors.Wrapf(err, "label config %s", path)
	}

	return config, nil
}

// Validate checks that the configuration describes a usable grid.
//
// Returns:
//   - error: ErrInvalidConfig wrapped with the offending field, or nil.
func (c Config) Validate() error {
	if c.PaddedSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "padded size must be positive, got %d", c.PaddedSize)
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "cell size must be positive, got %dx%d", c.CellWidth, c.CellHeight)
	}
	if c.CellWidth >= c.PaddedSize {
		return errors.Wrapf(ErrInvalidConfig, "cell width %d must be less than padded size %d", c.CellWidth, c.PaddedSize)
	}
	if c.CellHeight >= c.PaddedSize {
		return errors.Wrapf(ErrInvalidConfig, "cell height %d must be less than padded size %d", c.CellHeight, c.PaddedSize)
	}
	if math32.IsNaN(c.IntersectionThreshold) || c.IntersectionThreshold < 0 || c.IntersectionThreshold > 1 {
		return errors.Wrapf(ErrInvalidConfig, "intersection threshold must be in [0, 1], got %v", c.IntersectionThreshold)
	}
	return nil
}

// GridShape returns the number of cell rows and columns:
// ceil(PaddedSize/CellHeight) and ceil(PaddedSize/CellWidth).
func (c Config) GridShape() (rows, cols int) {
	rows = (c.PaddedSize + c.CellHeight - 1) / c.CellHeight
	cols = (c.PaddedSize + c.CellWidth - 1) / c.CellWidth
	return rows, cols
}
