package mail

import (
	"bytes"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/invigen/invigen/internal/assets"
)

const (
	// Email logos are fitted into this box and recompressed; only the
	// email path trades fidelity for size. Preview and file export keep
	// the full-resolution upload.
	maxLogoDimension = 100
	jpegQuality      = 60
)

// ShrinkLogo downscales a raster logo for the email path. SVG data is
// vector and already compact, so it passes through untouched, as does
// anything that fails to decode.
func ShrinkLogo(a assets.Asset) assets.Asset {
	if !a.Embedded() || strings.HasPrefix(a.MIME, "image/svg") {
		return a
	}
	img, err := imaging.Decode(bytes.NewReader(a.Data))
	if err != nil {
		return a
	}
	fitted := imaging.Fit(img, maxLogoDimension, maxLogoDimension, imaging.Lanczos)
	buf := &bytes.Buffer{}
	if err := imaging.Encode(buf, fitted, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return a
	}
	return assets.Asset{Ref: a.Ref, MIME: "image/jpeg", Data: buf.Bytes()}
}
