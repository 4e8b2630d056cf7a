// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package plot

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/grailbio/rqa/rqa"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	// 3x3 matrix, row major, origin top left: recurrences on the main
	// diagonal and at (2, 0).
	result := &rqa.RecurrencePlotResult{
		N: 3,
		Matrix: []byte{
			1, 0, 1,
			0, 1, 0,
			0, 0, 1,
		},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, result))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	bounds := img.Bounds()
	expect.EQ(t, bounds.Dx(), 3)
	expect.EQ(t, bounds.Dy(), 3)

	dark := func(x, y int) bool {
		r, g, b, _ := img.At(x, y).RGBA()
		return r == 0 && g == 0 && b == 0
	}
	// Matrix row y maps to image row N-1-y, recurrent cells are dark.
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			expect.EQ(t, dark(x, 2-y), result.Matrix[y*3+x] != 0, "cell (%d,%d)", x, y)
		}
	}
}
