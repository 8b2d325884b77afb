/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestRectInset(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	in := r.Inset(5, 5)
	if in.X != 15 || in.Y != 25 || in.W != 90 || in.H != 40 {
		t.Fatalf("unexpected inset: %+v", in)
	}
}

func TestRectFromPointsNormalizes(t *testing.T) {
	r := RectFromPoints(Pt{30, 5}, Pt{10, 25})
	if r != (Rect{X: 10, Y: 5, W: 20, H: 20}) {
		t.Fatalf("unexpected rect: %+v", r)
	}
	z := RectFromPoints(Pt{1, 1}, Pt{1, 1})
	if z != (Rect{X: 1, Y: 1}) {
		t.Fatalf("expected zero-area rect, got %+v", z)
	}
}

func TestRectUnion(t *testing.T) {
	u := Rect{X: 0, Y: 0, W: 10, H: 10}.Union(Rect{X: 20, Y: -5, W: 5, H: 5})
	if u != (Rect{X: 0, Y: -5, W: 25, H: 15}) {
		t.Fatalf("unexpected union: %+v", u)
	}
}

func TestParseHex(t *testing.T) {
	cases := []struct {
		in   string
		want Color
	}{
		{"#fff", White},
		{"000000", Black},
		{"#ff000080", Color{255, 0, 0, 128}},
		{" #2a82da ", Color{42, 130, 218, 255}},
	}
	for _, c := range cases {
		got, err := ParseHex(c.in)
		if err != nil {
			t.Fatalf("ParseHex(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseHex(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
	if _, err := ParseHex("#12"); err == nil {
		t.Fatalf("expected error for short color")
	}
	if _, err := ParseHex("#zzzzzz"); err == nil {
		t.Fatalf("expected error for non-hex color")
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	for _, c := range []Color{White, Black, {1, 2, 3, 4}} {
		got, err := ParseHex(c.Hex())
		if err != nil || got != c {
			t.Fatalf("round trip of %+v gave %+v err=%v", c, got, err)
		}
	}
}
