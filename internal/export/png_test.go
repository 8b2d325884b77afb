/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"image/png"
	"testing"

	"graphio/internal/vector"
)

func rectOnly() []*vector.Shape {
	// painted bounds (9,9) to (31,21): 22x12
	return []*vector.Shape{vector.NewBox(vector.KindRectangle, vector.Pt{X: 10, Y: 10}, vector.Pt{X: 30, Y: 20}, vector.Stroke{Color: black, Width: 2})}
}

func TestWritePNGSizedToBounds(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, rectOnly(), Options{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 22 || b.Dy() != 12 {
		t.Fatalf("size = %dx%d, want 22x12", b.Dx(), b.Dy())
	}
	// middle of the top edge is painted
	if _, _, _, a := img.At(11, 1).RGBA(); a == 0 {
		t.Errorf("top edge not painted")
	}
	// inside of the rectangle stays transparent
	if _, _, _, a := img.At(11, 6).RGBA(); a != 0 {
		t.Errorf("interior alpha = %d, want transparent", a)
	}
}

func TestRasterizeScaleAndBackground(t *testing.T) {
	img, err := Rasterize(rectOnly(), Options{Scale: 2, Background: vector.White})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 44 || b.Dy() != 24 {
		t.Fatalf("size = %dx%d, want 44x24", b.Dx(), b.Dy())
	}
	if c := img.RGBAAt(22, 12); c.R != 255 || c.G != 255 || c.B != 255 || c.A != 255 {
		t.Errorf("background = %+v, want opaque white", c)
	}
	if c := img.RGBAAt(22, 2); c.A != 255 || c.R > 64 {
		t.Errorf("edge = %+v, want dark stroke", c)
	}
}

func TestRasterizeSinglePointAndDegenerateBox(t *testing.T) {
	st := vector.Stroke{Color: vector.White, Width: 4}
	dot := vector.NewBrush(vector.Pt{X: 5, Y: 5}, st).Finalize()
	img, err := Rasterize([]*vector.Shape{dot}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("dot size = %v", b)
	}
	if c := img.RGBAAt(2, 2); c.A == 0 {
		t.Errorf("single point not painted")
	}

	flat := vector.NewBox(vector.KindEllipse, vector.Pt{X: 0, Y: 0}, vector.Pt{X: 10, Y: 0}, st)
	img, err = Rasterize([]*vector.Shape{flat}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(7, 2); c.A == 0 {
		t.Errorf("flat ellipse should paint as a line")
	}
}
