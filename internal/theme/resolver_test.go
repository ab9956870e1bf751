package theme

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invigen/invigen/internal/assets"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestResolve_DefaultAccent(t *testing.T) {
	th, err := Resolve("", nil, assets.Asset{Ref: "brand.png"})
	require.NoError(t, err)
	assert.Equal(t, DefaultAccent, th.Accent)
	assert.Equal(t, "#f1f5f9", th.Light)
	assert.False(t, th.HasLogo())
	assert.Equal(t, "brand.png", th.BrandFooter.Ref)
}

func TestResolve_DerivesLightFromAccent(t *testing.T) {
	th, err := Resolve("#3b82f6", nil, assets.Asset{})
	require.NoError(t, err)
	assert.Equal(t, "#3b82f6", th.Accent)
	assert.Equal(t, "#dbeafe", th.Light)
}

func TestResolve_RejectsOffPaletteAccent(t *testing.T) {
	_, err := Resolve("#bada55", nil, assets.Asset{})
	require.ErrorIs(t, err, ErrUnknownAccent)
}

func TestResolve_AcceptsValidLogo(t *testing.T) {
	logo := &assets.Asset{Ref: "logo.png", Data: pngBytes(t, 10, 10)}
	th, err := Resolve("#10b981", logo, assets.Asset{})
	require.NoError(t, err)
	assert.True(t, th.HasLogo())
}

func TestValidateLogo_RejectsOversized(t *testing.T) {
	big := make([]byte, MaxLogoBytes+1024)
	// Valid PNG magic so only the size check can trip.
	copy(big, pngBytes(t, 1, 1))
	err := ValidateLogo(big, "image/png")
	require.ErrorIs(t, err, ErrLogoTooLarge)
}

func TestValidateLogo_RejectsUnsupportedEncoding(t *testing.T) {
	err := ValidateLogo([]byte("GIF89a..................."), "image/gif")
	require.ErrorIs(t, err, ErrUnsupportedLogo)
}

func TestValidateLogo_AcceptsSVG(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	require.NoError(t, ValidateLogo(svg, "image/svg+xml"))
	// Also without a declared type: sniffed as XML.
	require.NoError(t, ValidateLogo(svg, ""))
}

func TestResolve_OversizedLogoLeavesNoTheme(t *testing.T) {
	big := make([]byte, MaxLogoBytes+1)
	copy(big, pngBytes(t, 1, 1))
	logo := &assets.Asset{Ref: "big.png", Data: big}
	th, err := Resolve("#3b82f6", logo, assets.Asset{})
	require.Error(t, err)
	assert.Zero(t, th)
}
