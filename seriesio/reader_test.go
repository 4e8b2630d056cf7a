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
package seriesio

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadFloats(t *testing.T) {
	dir, err := ioutil.TempDir("", "seriesio")
	require.NoError(t, err)
	defer os.RemoveAll(dir) // nolint: errcheck
	ctx := context.Background()

	path := writeTemp(t, dir, "plain.csv", "1.5\n-2.25\n3\n")
	series, err := ReadFloats(ctx, path, DefaultOpts)
	require.NoError(t, err)
	expect.EQ(t, series, []float32{1.5, -2.25, 3})
}

func TestReadFloatsColumns(t *testing.T) {
	dir, err := ioutil.TempDir("", "seriesio")
	require.NoError(t, err)
	defer os.RemoveAll(dir) // nolint: errcheck
	ctx := context.Background()

	path := writeTemp(t, dir, "cols.tsv", "time\tvalue\n0\t0.5\n1\t0.25\n2\t0.125\n")
	series, err := ReadFloats(ctx, path, Opts{Delimiter: "\t", Column: 1, Skip: 1})
	require.NoError(t, err)
	expect.EQ(t, series, []float32{0.5, 0.25, 0.125})
}

func TestReadFloatsSkipsBadRows(t *testing.T) {
	dir, err := ioutil.TempDir("", "seriesio")
	require.NoError(t, err)
	defer os.RemoveAll(dir) // nolint: errcheck
	ctx := context.Background()

	// A malformed number and a row missing the column are logged and
	// skipped; the analysis input keeps the remaining rows.
	path := writeTemp(t, dir, "bad.csv", "1,2\n3,x\n4\n5,6\n")
	series, err := ReadFloats(ctx, path, Opts{Delimiter: ",", Column: 1})
	require.NoError(t, err)
	expect.EQ(t, series, []float32{2, 6})
}

func TestReadFloatsGzip(t *testing.T) {
	dir, err := ioutil.TempDir("", "seriesio")
	require.NoError(t, err)
	defer os.RemoveAll(dir) // nolint: errcheck
	ctx := context.Background()

	path := filepath.Join(dir, "series.csv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("0.5\n1.5\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	series, err := ReadFloats(ctx, path, DefaultOpts)
	require.NoError(t, err)
	expect.EQ(t, series, []float32{0.5, 1.5})
}

func TestReadFloatsMissingFile(t *testing.T) {
	_, err := ReadFloats(context.Background(), "/no/such/file.csv", DefaultOpts)
	expect.True(t, err != nil)
}
