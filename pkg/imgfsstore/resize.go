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

package imgfsstore

import (
	"github.com/yshdb5/imgfs/pkg/container"
	"github.com/yshdb5/imgfs/pkg/imaging"
	"github.com/yshdb5/imgfs/pkg/imgfserr"
)

// lazilyResize materialises the sub-resolution r for slot i if it
// hasn't been computed yet, appending the encoded bytes to the blob
// region and rewriting the metadata record in place.
//
// The in-memory table is only updated after the full disk round-trip
// succeeds, so a crash mid-resize leaves orphan bytes at the tail of
// the file but never a table entry pointing at unwritten data.
func (f *File) lazilyResize(r container.Resolution, i int) error {
	if r == container.OrigRes {
		return nil
	}
	if r != container.ThumbRes && r != container.SmallRes {
		return imgfserr.New(imgfserr.InvalidArgument)
	}
	if i < 0 || i >= f.table.Len() {
		return imgfserr.New(imgfserr.InvalidImgID)
	}
	m := f.table.At(i)
	if !m.Valid() {
		return imgfserr.New(imgfserr.InvalidImgID)
	}
	if m.Offset[r] != 0 {
		return nil // already materialised
	}

	orig := make([]byte, m.Size[container.OrigRes])
	if _, err := f.f.ReadAt(orig, int64(m.Offset[container.OrigRes])); err != nil {
		return imgfserr.Wrap(imgfserr.IO, err)
	}

	im, err := imaging.Decode(orig)
	if err != nil {
		return imgfserr.Wrap(imgfserr.ImgLib, err)
	}

	var w, h uint16
	if r == container.ThumbRes {
		w, h = f.header.ThumbWidth(), f.header.ThumbHeight()
	} else {
		w, h = f.header.SmallWidth(), f.header.SmallHeight()
	}
	resized := imaging.Thumbnail(im, int(w), int(h))

	encoded, err := imaging.Encode(resized)
	if err != nil {
		return imgfserr.Wrap(imgfserr.ImgLib, err)
	}

	offset, err := f.appendBlob(encoded)
	if err != nil {
		return err
	}

	m.Offset[r] = uint64(offset)
	m.Size[r] = uint32(len(encoded))

	if err := container.WriteMetadataAt(f.f, i, m); err != nil {
		return imgfserr.Wrap(imgfserr.IO, err)
	}
	f.table.Set(i, m)

	f.header.Version++
	if err := container.WriteHeader(f.f, f.header); err != nil {
		return imgfserr.Wrap(imgfserr.IO, err)
	}
	return nil
}
