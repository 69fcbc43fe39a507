package storage

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/glowbook/salon-api/internal/httperr"
)

const (
	MaxAvatarBytes = 2 << 20
	MaxBannerBytes = 5 << 20

	AvatarMaxWidth = 512
	BannerMaxWidth = 1600

	webpQuality = 82
)

// EncodeWebP decodes an uploaded JPEG/PNG, scales it down to maxWidth when
// wider, and re-encodes as webp. Keeps upload sizes predictable regardless
// of what the salon owner sends.
func EncodeWebP(src []byte, maxWidth int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxWidth {
		ratio := float64(maxWidth) / float64(bounds.Dx())
		height := int(float64(bounds.Dy()) * ratio)

		scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
