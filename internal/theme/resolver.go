// Package theme resolves the user's customization choices into the
// immutable style configuration a render pass consumes.
package theme

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/invigen/invigen/internal/assets"
)

// MaxLogoBytes caps an uploaded logo at intake.
const MaxLogoBytes = 2 << 20

// Sentinel errors surfaced before an upload becomes part of any theme.
var (
	ErrUnsupportedLogo = errors.New("logo must be a PNG, JPEG or SVG image")
	ErrLogoTooLarge    = errors.New("logo exceeds the 2 MiB upload limit")
	ErrUnknownAccent   = errors.New("accent color is not in the palette")
)

// Theme is the resolved visual configuration of one render pass.
// Every secondary color is derived here from the single accent choice;
// the renderer and adapters read it and never recompute colors.
type Theme struct {
	// Accent drives the invoice number, client name, items header,
	// business card fill and total-due row fill.
	Accent string
	// Light is the pale companion tone for subdued table backgrounds.
	Light string

	// Logo is the optional user upload. When nil the layout collapses
	// the logo slot entirely.
	Logo *assets.Asset
	// BrandFooter is the host application's own footer mark, present on
	// every page regardless of customization.
	BrandFooter assets.Asset
}

// HasLogo reports whether a user logo was accepted into the theme.
func (t Theme) HasLogo() bool { return t.Logo != nil }

// Resolve maps an accent choice and an optional validated logo into a
// concrete Theme. An empty choice takes the default dark neutral.
func Resolve(accentChoice string, logo *assets.Asset, brandFooter assets.Asset) (Theme, error) {
	if accentChoice == "" {
		accentChoice = DefaultAccent
	}
	opt, ok := paletteOption(accentChoice)
	if !ok {
		return Theme{}, fmt.Errorf("%w: %s", ErrUnknownAccent, accentChoice)
	}
	if logo != nil {
		if err := ValidateLogo(logo.Data, logo.MIME); err != nil {
			return Theme{}, err
		}
	}
	return Theme{
		Accent:      opt.Value,
		Light:       opt.Light,
		Logo:        logo,
		BrandFooter: brandFooter,
	}, nil
}

// Default returns the theme used when the user never opened the
// customizer: default accent, no logo.
func Default(brandFooter assets.Asset) Theme {
	t, _ := Resolve(DefaultAccent, nil, brandFooter)
	return t
}

// ValidateLogo checks an uploaded logo's encoding and size before it
// can enter a theme. The declared MIME type is advisory; raster types
// are sniffed from the bytes.
func ValidateLogo(data []byte, declaredMIME string) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty upload", ErrUnsupportedLogo)
	}
	if len(data) > MaxLogoBytes {
		return ErrLogoTooLarge
	}
	sniffed := http.DetectContentType(data)
	switch {
	case sniffed == "image/png", sniffed == "image/jpeg":
		return nil
	case isSVG(data, declaredMIME, sniffed):
		return nil
	}
	return fmt.Errorf("%w: got %s", ErrUnsupportedLogo, sniffed)
}

func isSVG(data []byte, declared, sniffed string) bool {
	if strings.HasPrefix(declared, "image/svg") {
		return true
	}
	// DetectContentType reports SVG as generic XML or text.
	if !strings.HasPrefix(sniffed, "text/xml") && !strings.HasPrefix(sniffed, "text/plain") {
		return false
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}
