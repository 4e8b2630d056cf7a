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

// Package seriesio loads scalar time series from delimited text files. Rows
// that cannot be parsed are logged and skipped; structural failures (missing
// file, bad gzip stream) are returned.
package seriesio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
)

// Opts select the column to extract.
type Opts struct {
	// Delimiter separates columns within a row.
	Delimiter string
	// Column is the zero-based index of the column to extract.
	Column int
	// Skip is the number of leading lines to ignore.
	Skip int
}

// DefaultOpts read the first column of a comma separated file.
var DefaultOpts = Opts{Delimiter: ","}

// ReadFloats loads one column of the file at path as a float32 series. Paths
// ending in .gz are decompressed on the fly.
func ReadFloats(ctx context.Context, path string, opts Opts) (series []float32, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	var r io.Reader = in.Reader(ctx)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close() // nolint: errcheck
		r = gz
	}
	return readFloats(path, r, opts)
}

func readFloats(path string, r io.Reader, opts Opts) ([]float32, error) {
	if opts.Column < 0 {
		return nil, errors.E(fmt.Sprintf("%s: column index %d < 0", path, opts.Column))
	}
	if opts.Skip < 0 {
		return nil, errors.E(fmt.Sprintf("%s: line offset %d < 0", path, opts.Skip))
	}
	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = DefaultOpts.Delimiter
	}
	var (
		series  []float32
		scanner = bufio.NewScanner(r)
		lineno  int
		bad     int
	)
	for scanner.Scan() {
		lineno++
		if lineno <= opts.Skip {
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		columns := strings.Split(line, delimiter)
		if opts.Column >= len(columns) {
			bad++
			log.Error.Printf("%s:%d: no column %d in %q", path, lineno, opts.Column, line)
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(columns[opts.Column]), 32)
		if err != nil {
			bad++
			log.Error.Printf("%s:%d: %v", path, lineno, err)
			continue
		}
		series = append(series, float32(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if bad > 0 {
		log.Printf("%s: %d lines could not be processed", path, bad)
	}
	return series, nil
}
