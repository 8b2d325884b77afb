/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"graphio/internal/vector"
)

// WritePNG rasterizes shapes and encodes them as PNG.
func WritePNG(w io.Writer, shapes []*vector.Shape, opt Options) error {
	img, err := Rasterize(shapes, opt)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes a PNG file.
func SavePNG(path string, shapes []*vector.Shape, opt Options) error {
	return writeFile(path, func(f *os.File) error { return WritePNG(f, shapes, opt) })
}

// Rasterize paints shapes in order onto a new image sized to their bounds.
func Rasterize(shapes []*vector.Shape, opt Options) (*image.RGBA, error) {
	pg, err := layout(shapes, opt)
	if err != nil {
		return nil, err
	}
	s := opt.scale()
	w := max(int(math.Ceil(pg.W*s)), 1)
	h := max(int(math.Ceil(pg.H*s)), 1)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if opt.Background.A > 0 {
		draw.Draw(img, img.Bounds(), image.NewUniform(toNRGBA(opt.Background)), image.Point{}, draw.Src)
	}
	r := NewRasterizer(img)
	for _, sh := range shapes {
		r.Stroke(sh, func(p vector.Pt) (float64, float64) {
			x, y := pg.at(p)
			return x * s, y * s
		}, s)
	}
	return img, nil
}

// Rasterizer strokes shapes onto a fixed image. It is reused across frames
// by the canvas widget.
type Rasterizer struct {
	img    draw.Image
	dasher *rasterx.Dasher
}

func NewRasterizer(img draw.Image) *Rasterizer {
	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	return &Rasterizer{img: img, dasher: rasterx.NewDasher(b.Dx(), b.Dy(), scanner)}
}

// Stroke paints one shape. xf maps canvas points to pixels and scale is the
// matching factor for the stroke width.
func (r *Rasterizer) Stroke(sh *vector.Shape, xf func(vector.Pt) (float64, float64), scale float64) {
	st := sh.Stroke()
	width := float64(st.Width) * scale
	d := r.dasher
	d.Clear()
	d.SetColor(toNRGBA(st.Color))
	d.SetStroke(fixed.Int26_6(width*64), 4*64, capFunc(st.Cap), capFunc(st.Cap), rasterx.RoundGap, joinMode(st.Join), nil, 0)

	switch sh.Kind() {
	case vector.KindFreehand:
		pts := sh.Points()
		x0, y0 := xf(pts[0])
		if len(pts) == 1 {
			r.dot(x0, y0, width)
			break
		}
		d.Start(rasterx.ToFixedP(x0, y0))
		for _, p := range pts[1:] {
			x, y := xf(p)
			d.Line(rasterx.ToFixedP(x, y))
		}
		d.Stop(false)
	default:
		a, b := sh.Corners()
		x0, y0 := xf(a)
		x1, y1 := xf(b)
		minX, maxX := min(x0, x1), max(x0, x1)
		minY, maxY := min(y0, y1), max(y0, y1)
		switch {
		case minX == maxX && minY == maxY:
			r.dot(minX, minY, width)
		case minX == maxX || minY == maxY:
			// a flat box paints as a line
			d.Start(rasterx.ToFixedP(minX, minY))
			d.Line(rasterx.ToFixedP(maxX, maxY))
			d.Stop(false)
		case sh.Kind() == vector.KindEllipse:
			rasterx.AddEllipse((minX+maxX)/2, (minY+maxY)/2, (maxX-minX)/2, (maxY-minY)/2, 0, d)
		default:
			rasterx.AddRect(minX, minY, maxX, maxY, 0, d)
		}
	}
	d.Draw()
}

// dot paints a filled disc of the given diameter as a circle stroked with
// half that width.
func (r *Rasterizer) dot(x, y, width float64) {
	d := r.dasher
	d.SetStroke(fixed.Int26_6(width/2*64), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	rasterx.AddCircle(x, y, width/4, d)
}

func capFunc(c vector.LineCap) rasterx.CapFunc {
	switch c {
	case vector.CapRound:
		return rasterx.RoundCap
	case vector.CapSquare:
		return rasterx.SquareCap
	}
	return rasterx.ButtCap
}

func joinMode(j vector.LineJoin) rasterx.JoinMode {
	switch j {
	case vector.JoinRound:
		return rasterx.Round
	case vector.JoinBevel:
		return rasterx.Bevel
	}
	return rasterx.MiterClip
}

func toNRGBA(c vector.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
