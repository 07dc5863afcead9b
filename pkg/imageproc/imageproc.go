// Package imageproc, yüklenen görselleri doğrular ve gerekirse küçültür.
//
// İçerik tipi dosya adından değil byte'lardan tespit edilir (mimetype).
// Desteklenen formatlar: JPEG, PNG, WebP, GIF. Uzun kenarı maxDimension'ı
// aşan görseller CatmullRom ile küçültülür. Küçültülmeyen görseller
// orijinal byte'larıyla döner.
package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// ErrUnsupportedFormat, içerik desteklenen bir görsel formatı değilse döner.
var ErrUnsupportedFormat = errors.New("unsupported image format")

const jpegQuality = 85

var allowed = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Result, işlenmiş görsel.
type Result struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
	Resized     bool
}

// Sniff, byte'lardan içerik tipini ve uzantıyı tespit eder.
func Sniff(data []byte) (contentType, ext string, err error) {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if e, ok := allowed[m.String()]; ok {
			return m.String(), e, nil
		}
	}
	return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mt.String())
}

// Process, görseli doğrular ve uzun kenarı maxDimension'ı aşıyorsa küçültür.
// maxDimension <= 0 ise küçültme yapılmaz. Şeffaflık taşıyabilen formatlar
// (PNG, WebP, GIF) küçültülünce PNG, JPEG ise JPEG olarak yeniden kodlanır.
func Process(data []byte, maxDimension int) (*Result, error) {
	contentType, ext, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	img, err := decode(data, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	b := img.Bounds()
	res := &Result{
		Data:        data,
		ContentType: contentType,
		Ext:         ext,
		Width:       b.Dx(),
		Height:      b.Dy(),
	}

	scaled, ok := downscale(img, maxDimension)
	if !ok {
		return res, nil
	}

	var buf bytes.Buffer
	if contentType == "image/jpeg" {
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: jpegQuality})
	} else {
		err = png.Encode(&buf, scaled)
		res.ContentType, res.Ext = "image/png", ".png"
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}

	sb := scaled.Bounds()
	res.Data = buf.Bytes()
	res.Width, res.Height = sb.Dx(), sb.Dy()
	res.Resized = true
	return res, nil
}

func decode(data []byte, contentType string) (image.Image, error) {
	r := bytes.NewReader(data)
	switch contentType {
	case "image/jpeg":
		return jpeg.Decode(r)
	case "image/png":
		return png.Decode(r)
	case "image/webp":
		return webp.Decode(r)
	case "image/gif":
		return gif.Decode(r)
	}
	return nil, ErrUnsupportedFormat
}

func downscale(src image.Image, maxDimension int) (image.Image, bool) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDimension <= 0 || (w <= maxDimension && h <= maxDimension) {
		return src, false
	}

	var nw, nh int
	if w >= h {
		nw = maxDimension
		nh = max(1, h*maxDimension/w)
	} else {
		nh = maxDimension
		nw = max(1, w*maxDimension/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst, true
}
