package utils

import (
	"bytes"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"mime/multipart"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// ProcessAvatar decodes an uploaded avatar, caps it at 512px wide and
// re-encodes it as WebP (JPEG fallback). Returns the bytes and content type.
func ProcessAvatar(file multipart.File) ([]byte, string, error) {
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, "", err
	}

	if img.Bounds().Dx() > 512 {
		img = imaging.Resize(img, 512, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: false, Quality: 85}); err != nil {
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}

	return buf.Bytes(), "image/webp", nil
}
