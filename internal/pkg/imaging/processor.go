package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// ProcessedIcon is a normalized square icon ready for upload
type ProcessedIcon struct {
	Data        []byte
	ContentType string
	Size        int
}

// Config for icon processing
type Config struct {
	Size    int // Output edge length in pixels (default 256)
	Quality int // JPEG quality 1-100 (default 85)
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{
		Size:    256,
		Quality: 85,
	}
}

// Processor handles icon processing
type Processor struct {
	config Config
}

// NewProcessor creates icon processor
func NewProcessor(config Config) *Processor {
	if config.Size <= 0 {
		config.Size = DefaultConfig().Size
	}
	if config.Quality <= 0 || config.Quality > 100 {
		config.Quality = DefaultConfig().Quality
	}
	return &Processor{config: config}
}

// Process decodes an image and center-crops it to a square icon.
// PNG sources stay PNG to keep transparency; everything else is re-encoded as JPEG.
func (p *Processor) Process(reader io.Reader) (*ProcessedIcon, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	icon := imaging.Fill(img, p.config.Size, p.config.Size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	contentType := "image/jpeg"
	if format == "png" {
		contentType = "image/png"
		err = png.Encode(&buf, icon)
	} else {
		err = jpeg.Encode(&buf, icon, &jpeg.Options{Quality: p.config.Quality})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode icon: %w", err)
	}

	return &ProcessedIcon{
		Data:        buf.Bytes(),
		ContentType: contentType,
		Size:        icon.Bounds().Dx(),
	}, nil
}
