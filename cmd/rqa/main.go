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
package main

/*
rqa computes recurrence plots (rp) and recurrence quantification analyses
(rqa) for scalar time series read from delimited text files.
*/

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/rqa/engine"
	"github.com/grailbio/rqa/plot"
	"github.com/grailbio/rqa/rqa"
	"github.com/grailbio/rqa/seriesio"
)

var (
	neighbourhood = flag.String("n", "fr", "neighbourhood (choices: fr (fixed radius), rc (radius corridor), fan (fixed amount of nearest neighbours))")
	delimiter     = flag.String("d", ",", "delimiter of columns in the input file")
	column        = flag.Int("c", 0, "zero-based data column within the input file")
	skip          = flag.Int("s", 0, "number of leading input lines to skip")
	output        = flag.String("o", "", "write the result to this path (default stdout)")
	embeddingDim  = flag.Int("m", 2, "embedding dimension")
	timeDelay     = flag.Int("t", 2, "time delay")
	minDiagonal   = flag.Int("l_min", 2, "minimum diagonal line length")
	minVertical   = flag.Int("v_min", 2, "minimum vertical line length")
	minWhite      = flag.Int("w_min", 2, "minimum white vertical line length")
	theiler       = flag.Int("w", 1, "Theiler corrector")
	edgeLength    = flag.Int("z", engine.DefaultEdgeLength, "edge length of the sub matrices")
	radius        = flag.Float64("r", 1.0, "radius (fixed radius neighbourhood)")
	innerRadius   = flag.Float64("ri", 0.1, "inner radius (radius corridor neighbourhood)")
	outerRadius   = flag.Float64("ro", 1.0, "outer radius (radius corridor neighbourhood)")
	kNearest      = flag.Int("k", 10, "amount of nearest neighbours (FAN neighbourhood)")
	optimisations = flag.Bool("opt", true, "enable device compiler optimisations")
	distPrefix    = flag.String("dist", "", "write the frequency distributions to PREFIX.{diagonal,vertical,white_vertical}.tsv")
	parallelism   = flag.Int("parallelism", 0, "maximum number of simultaneous devices; 0 = one per CPU")
)

func rqaUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] {rp,rqa} INPUT_FILE\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = rqaUsage
	shutdown := grail.Init()
	defer shutdown()

	args := flag.Args()
	if len(args) != 2 {
		log.Fatalf("Expected positional arguments TYPE INPUT_FILE; please check flag syntax: '%s'", strings.Join(args, " "))
	}
	computationType, inputPath := args[0], args[1]
	ctx := vcontext.Background()

	series, err := seriesio.ReadFloats(ctx, inputPath, seriesio.Opts{
		Delimiter: *delimiter,
		Column:    *column,
		Skip:      *skip,
	})
	if err != nil {
		log.Fatalf("reading %s: %v", inputPath, err)
	}

	settings := rqa.NewSettings(series)
	settings.EmbeddingDimension = *embeddingDim
	settings.TimeDelay = *timeDelay
	settings.TheilerCorrector = *theiler
	settings.MinDiagonalLineLength = *minDiagonal
	settings.MinVerticalLineLength = *minVertical
	settings.MinWhiteVerticalLineLength = *minWhite
	switch *neighbourhood {
	case "fr":
		settings.Neighbourhood = rqa.FixedRadius{Radius: float32(*radius)}
	case "rc":
		settings.Neighbourhood = rqa.RadiusCorridor{InnerRadius: float32(*innerRadius), OuterRadius: float32(*outerRadius)}
	case "fan":
		settings.Neighbourhood = rqa.FAN{K: *kNearest}
	default:
		log.Fatalf("unknown neighbourhood %q (choices: fr, rc, fan)", *neighbourhood)
	}

	opts := engine.DefaultOpts
	opts.EdgeLength = *edgeLength
	opts.OptimisationsEnabled = *optimisations
	opts.Parallelism = *parallelism

	switch computationType {
	case "rp":
		computation, err := engine.NewRecurrencePlot(settings, opts)
		if err != nil {
			log.Fatalf("%v", err)
		}
		result, err := computation.Run(ctx)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if *output != "" {
			if err := plot.WriteFile(ctx, *output, result); err != nil {
				log.Fatalf("writing %s: %v", *output, err)
			}
		} else if err := plot.Write(os.Stdout, result); err != nil {
			log.Fatalf("%v", err)
		}
	case "rqa":
		computation, err := engine.NewRQA(settings, opts)
		if err != nil {
			log.Fatalf("%v", err)
		}
		result, err := computation.Run(ctx)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if *output != "" {
			if err := writeString(ctx, *output, result.String()); err != nil {
				log.Fatalf("writing %s: %v", *output, err)
			}
		} else {
			fmt.Println(result)
			fmt.Println(result.Runtimes)
		}
		if *distPrefix != "" {
			writeDistributions(ctx, *distPrefix, result)
		}
	default:
		log.Fatalf("unknown computation type %q (choices: rp, rqa)", computationType)
	}
	log.Debug.Printf("exiting")
}

func writeDistributions(ctx context.Context, prefix string, result *rqa.RQAResult) {
	for _, part := range []struct {
		name  string
		write func(io.Writer) error
	}{
		{"diagonal", result.WriteDiagonalFrequencyDistribution},
		{"vertical", result.WriteVerticalFrequencyDistribution},
		{"white_vertical", result.WriteWhiteVerticalFrequencyDistribution},
	} {
		path := prefix + "." + part.name + ".tsv"
		if err := writeFunc(ctx, path, part.write); err != nil {
			log.Fatalf("writing %s: %v", path, err)
		}
	}
}

func writeFunc(ctx context.Context, path string, write func(io.Writer) error) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	return write(out.Writer(ctx))
}

func writeString(ctx context.Context, path, s string) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	_, err = io.WriteString(out.Writer(ctx), s)
	return err
}
