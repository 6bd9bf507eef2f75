/*
Copyright 2026 The imgfs Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package imaging is the JPEG decode/thumbnail/encode collaborator that
// spec.md §1 treats as an external library boundary: decode(buf)->image,
// thumbnail(image,w,h)->image, encode_jpeg(image)->buf, and
// dimensions(buf)->(w,h).
//
// Orientation handling follows pkg/images in the teacher repo: an EXIF
// Orientation tag, when present, is applied before any caller sees the
// decoded image, so thumbnails never come out sideways just because the
// camera held them that way.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"

	xdraw "golang.org/x/image/draw"

	"github.com/rwcarlsen/goexif/exif"
)

// JPEGQuality is the quality used when re-encoding resized variants.
const JPEGQuality = 85

// Decode parses buf as a JPEG, applying EXIF auto-rotation the way
// images.Decode does in the teacher package.
func Decode(buf []byte) (image.Image, error) {
	im, err := jpeg.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}
	if angle, flip, ok := exifOrientation(buf); ok {
		im = flipImage(rotateImage(im, angle), flip)
	}
	return im, nil
}

// Dimensions reports the pixel width and height of a JPEG buffer
// without decoding the full pixel grid, mirroring the original's
// get_resolution (width, height derived from the image library).
func Dimensions(buf []byte) (width, height int, err error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return 0, 0, fmt.Errorf("imaging: dimensions: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// Thumbnail scales im to fit within maxW x maxH, preserving aspect
// ratio, using a Catmull-Rom resampler for quality comparable to the
// reference implementation's libvips-based vips_thumbnail_image.
func Thumbnail(im image.Image, maxW, maxH int) image.Image {
	b := im.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return im
	}
	scale := float64(maxW) / float64(srcW)
	if s := float64(maxH) / float64(srcH); s < scale {
		scale = s
	}
	if scale >= 1 {
		// Never upscale; the original is already within bounds.
		return im
	}
	dstW := int(float64(srcW) * scale)
	dstH := int(float64(srcH) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), im, b, xdraw.Over, nil)
	return dst
}

// Encode re-encodes im as a JPEG buffer.
func Encode(im image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, im, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// exifOrientation extracts a rotation angle (counter-clockwise degrees)
// and flip direction from buf's EXIF Orientation tag, if any.
func exifOrientation(buf []byte) (angle int, flip flipDirection, ok bool) {
	x, err := exif.Decode(bytes.NewReader(buf))
	if err != nil {
		return 0, 0, false
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 0, 0, false
	}
	orient, err := tag.Int(0)
	if err != nil {
		return 0, 0, false
	}
	switch orient {
	case 1:
		return 0, 0, true
	case 2:
		return 0, flipHorizontal, true
	case 3:
		return 180, 0, true
	case 4:
		return 180, flipHorizontal, true
	case 5:
		return -90, flipHorizontal, true
	case 6:
		return -90, 0, true
	case 7:
		return 90, flipHorizontal, true
	case 8:
		return 90, 0, true
	default:
		return 0, 0, false
	}
}

type flipDirection int

const (
	flipHorizontal flipDirection = 1 << iota
)

func rotateImage(im image.Image, angle int) image.Image {
	if angle == 0 {
		return im
	}
	b := im.Bounds()
	w, h := b.Dx(), b.Dy()
	var out *image.NRGBA
	switch angle {
	case 90:
		out = image.NewNRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < w; y++ {
			for x := 0; x < h; x++ {
				out.Set(x, y, im.At(b.Min.X+w-1-y, b.Min.Y+x))
			}
		}
	case -90:
		out = image.NewNRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < w; y++ {
			for x := 0; x < h; x++ {
				out.Set(x, y, im.At(b.Min.X+y, b.Min.Y+h-1-x))
			}
		}
	case 180, -180:
		out = image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(x, y, im.At(b.Min.X+w-1-x, b.Min.Y+h-1-y))
			}
		}
	default:
		return im
	}
	return out
}

func flipImage(im image.Image, dir flipDirection) image.Image {
	if dir == 0 {
		return im
	}
	b := im.Bounds()
	dx, dy := b.Dx(), b.Dy()
	di, ok := im.(draw.Image)
	if !ok {
		nrgba := image.NewNRGBA(b)
		draw.Draw(nrgba, b, im, b.Min, draw.Src)
		di = nrgba
		im = nrgba
	}
	if dir&flipHorizontal != 0 {
		for y := b.Min.Y; y < b.Min.Y+dy; y++ {
			for x := b.Min.X; x < b.Min.X+dx/2; x++ {
				mirror := b.Min.X + (b.Min.X+dx-1-x) - b.Min.X
				old := im.At(x, y)
				di.Set(x, y, im.At(mirror, y))
				di.Set(mirror, y, old)
			}
		}
	}
	return im
}
