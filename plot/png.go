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

// Package plot encodes recurrence matrices as PNG images.
package plot

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/rqa/rqa"
	"github.com/pkg/errors"
)

// Write encodes the recurrence plot one pixel per cell. The Y axis is
// inverted so the origin sits bottom left (time grows upward and rightward),
// and the palette is inverted: recurrent cells are dark.
func Write(w io.Writer, result *rqa.RecurrencePlotResult) error {
	n := result.N
	img := image.NewGray(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := uint8(0xff)
			if result.At(x, y) {
				v = 0
			}
			img.SetGray(x, n-1-y, color.Gray{Y: v})
		}
	}
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "encoding recurrence plot")
	}
	return nil
}

// WriteFile writes the recurrence plot PNG to path.
func WriteFile(ctx context.Context, path string, result *rqa.RecurrencePlotResult) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	return Write(out.Writer(ctx), result)
}
