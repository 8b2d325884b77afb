/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	svg "github.com/ajstarks/svgo/float"

	"graphio/internal/vector"
)

// WriteSVG writes shapes as an SVG document with coordinates in canvas
// units, kept to two decimals.
func WriteSVG(w io.Writer, shapes []*vector.Shape, opt Options) error {
	pg, err := layout(shapes, opt)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	width := max(pg.W, 1)
	height := max(pg.H, 1)
	canvas := svg.New(bw)
	canvas.Startview(width, height, 0, 0, width, height)
	canvas.Title("Graphio drawing")
	if opt.Background.A > 0 {
		canvas.Rect(0, 0, width, height, "fill:"+svgColor(opt.Background)+";"+opacityStyle("fill", opt.Background)+"stroke:none")
	}
	for _, s := range shapes {
		writeShape(canvas, pg, s)
	}
	canvas.End()
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// SaveSVG writes an SVG file.
func SaveSVG(path string, shapes []*vector.Shape, opt Options) error {
	return writeFile(path, func(f *os.File) error { return WriteSVG(f, shapes, opt) })
}

func writeShape(canvas *svg.SVG, pg page, s *vector.Shape) {
	st := s.Stroke()
	width := float64(st.Width)
	switch s.Kind() {
	case vector.KindFreehand:
		pts := s.Points()
		if len(pts) == 1 {
			x, y := pg.at(pts[0])
			canvas.Circle(x, y, width/2, dotStyle(st))
			return
		}
		xs := make([]float64, len(pts))
		ys := make([]float64, len(pts))
		for i, p := range pts {
			xs[i], ys[i] = pg.at(p)
		}
		canvas.Polyline(xs, ys, strokeStyle(st))
	default:
		a, b := s.Corners()
		x0, y0 := pg.at(a)
		x1, y1 := pg.at(b)
		minX, maxX := min(x0, x1), max(x0, x1)
		minY, maxY := min(y0, y1), max(y0, y1)
		switch {
		case minX == maxX && minY == maxY:
			canvas.Circle(minX, minY, width/2, dotStyle(st))
		case minX == maxX || minY == maxY:
			// renderers skip zero-area rect and ellipse elements
			canvas.Line(minX, minY, maxX, maxY, strokeStyle(st))
		case s.Kind() == vector.KindEllipse:
			canvas.Ellipse((minX+maxX)/2, (minY+maxY)/2, (maxX-minX)/2, (maxY-minY)/2, strokeStyle(st))
		default:
			canvas.Rect(minX, minY, maxX-minX, maxY-minY, strokeStyle(st))
		}
	}
}

func dotStyle(st vector.Stroke) string {
	return "fill:" + svgColor(st.Color) + ";" + opacityStyle("fill", st.Color) + "stroke:none"
}

func strokeStyle(st vector.Stroke) string {
	return "fill:none;stroke:" + svgColor(st.Color) + ";" + opacityStyle("stroke", st.Color) +
		"stroke-width:" + strconv.FormatFloat(float64(st.Width), 'g', -1, 32) +
		";stroke-linecap:" + capName(st.Cap) + ";stroke-linejoin:" + joinName(st.Join)
}

func opacityStyle(prop string, c vector.Color) string {
	if c.A == 255 {
		return ""
	}
	return prop + "-opacity:" + strconv.FormatFloat(c.Opacity(), 'f', 3, 64) + ";"
}

// svgColor drops alpha; opacity is emitted separately for wider viewer support.
func svgColor(c vector.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func capName(c vector.LineCap) string {
	switch c {
	case vector.CapRound:
		return "round"
	case vector.CapSquare:
		return "square"
	}
	return "butt"
}

func joinName(j vector.LineJoin) string {
	switch j {
	case vector.JoinRound:
		return "round"
	case vector.JoinBevel:
		return "bevel"
	}
	return "miter"
}
