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

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

func makeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	im := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			im.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, im, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDimensions(t *testing.T) {
	data := makeJPEG(t, 800, 600)
	w, h, err := Dimensions(data)
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if w != 800 || h != 600 {
		t.Errorf("Dimensions = (%d, %d), want (800, 600)", w, h)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	data := makeJPEG(t, 64, 48)
	im, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	b := im.Bounds()
	if b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("decoded bounds = %v, want 64x48", b)
	}
}

func TestThumbnailNeverUpscales(t *testing.T) {
	data := makeJPEG(t, 32, 32)
	im, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out := Thumbnail(im, 256, 256)
	b := out.Bounds()
	if b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("Thumbnail upscaled: got %v, want unchanged 32x32", b)
	}
}

func TestThumbnailPreservesAspectRatio(t *testing.T) {
	data := makeJPEG(t, 800, 600)
	im, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out := Thumbnail(im, 64, 64)
	b := out.Bounds()
	if b.Dx() > 64 || b.Dy() > 64 {
		t.Errorf("Thumbnail bounds %v exceed 64x64", b)
	}
	if b.Dx() == 0 || b.Dy() == 0 {
		t.Errorf("Thumbnail bounds %v degenerate", b)
	}
	wantH := 64 * 600 / 800
	if diff := b.Dy() - wantH; diff < -1 || diff > 1 {
		t.Errorf("Thumbnail height = %d, want ~%d (aspect-preserving)", b.Dy(), wantH)
	}
}

func TestEncodeProducesDecodableJPEG(t *testing.T) {
	data := makeJPEG(t, 16, 16)
	im, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	encoded, err := Encode(im)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(encoded)); err != nil {
		t.Errorf("re-decoding Encode output failed: %v", err)
	}
}
