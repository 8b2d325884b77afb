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
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"graphio/internal/vector"
	"graphio/internal/version"
)

// WritePDF writes a single-page PDF. Canvas units map 1:1 to points; the
// page has the size of the drawing plus margin.
func WritePDF(w io.Writer, shapes []*vector.Shape, opt Options) error {
	pg, err := layout(shapes, opt)
	if err != nil {
		return err
	}
	size := gofpdf.SizeType{Wd: max(pg.W, 1), Ht: max(pg.H, 1)}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    size,
		// orientation follows the size
		OrientationStr: "",
	})
	title := opt.Title
	if title == "" {
		title = "Drawing"
	}
	pdf.SetTitle(title, true)
	pdf.SetCreator(version.String(), true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("", size)

	if opt.Background.A > 0 {
		setFillColor(pdf, opt.Background)
		pdf.Rect(0, 0, size.Wd, size.Ht, "F")
	}
	for _, s := range shapes {
		drawShape(pdf, pg, s)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// SavePDF writes the PDF to path.
func SavePDF(path string, shapes []*vector.Shape, opt Options) error {
	return writeFile(path, func(f *os.File) error { return WritePDF(f, shapes, opt) })
}

func drawShape(pdf *gofpdf.Fpdf, pg page, s *vector.Shape) {
	st := s.Stroke()
	setDrawColor(pdf, st.Color)
	pdf.SetAlpha(st.Color.Opacity(), "Normal")
	pdf.SetLineWidth(float64(st.Width))
	pdf.SetLineCapStyle(capName(st.Cap))
	pdf.SetLineJoinStyle(joinName(st.Join))
	defer pdf.SetAlpha(1, "Normal")

	switch s.Kind() {
	case vector.KindFreehand:
		pts := s.Points()
		x, y := pg.at(pts[0])
		if len(pts) == 1 {
			setFillColor(pdf, st.Color)
			pdf.Circle(x, y, float64(st.Width)/2, "F")
			return
		}
		pdf.MoveTo(x, y)
		for _, p := range pts[1:] {
			x, y = pg.at(p)
			pdf.LineTo(x, y)
		}
		pdf.DrawPath("D")
	case vector.KindEllipse:
		b := s.Box()
		cx, cy := pg.at(b.Center())
		pdf.Ellipse(cx, cy, float64(b.W)/2, float64(b.H)/2, 0, "D")
	default:
		b := s.Box()
		x, y := pg.at(b.Min())
		pdf.Rect(x, y, float64(b.W), float64(b.H), "D")
	}
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
