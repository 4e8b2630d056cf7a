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
package engine

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/rqa/kernel"
	"github.com/grailbio/rqa/rqa"
	"github.com/grailbio/rqa/tiling"
)

// NewRQA returns the tiled RQA computation for the settings. Only the fixed
// radius neighbourhood has optimised kernels; radius corridor and FAN are
// rejected as unsupported configurations.
func NewRQA(settings rqa.Settings, opts Opts) (*RQA, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := checkNeighbourhood(settings.Neighbourhood); err != nil {
		return nil, err
	}
	order := opts.Order
	switch order {
	case tiling.Default:
		order = tiling.Diagonal
	case tiling.Diagonal, tiling.Vertical:
	case tiling.Bulk:
		return nil, errors.E("engine: bulk processing order breaks carryover dependencies")
	default:
		return nil, errors.E(fmt.Sprintf("engine: unknown processing order %v", order))
	}
	class, kind := variant(opts, "ColumnMatByteRec", "ColumnMatBitRec")
	kernels, err := registryOf(opts).FileNames("RQA", settings.Neighbourhood.Name(), class)
	if err != nil {
		return nil, err
	}
	return &RQA{settings: settings, opts: opts, order: order, kind: kind, kernels: kernels}, nil
}

// NewRecurrencePlot returns the tiled recurrence plot materialisation for
// the settings. The same neighbourhood restriction applies.
func NewRecurrencePlot(settings rqa.Settings, opts Opts) (*RecurrencePlot, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := checkNeighbourhood(settings.Neighbourhood); err != nil {
		return nil, err
	}
	order := opts.Order
	switch order {
	case tiling.Default:
		order = tiling.Bulk
	case tiling.Diagonal, tiling.Vertical, tiling.Bulk:
	default:
		return nil, errors.E(fmt.Sprintf("engine: unknown processing order %v", order))
	}
	class, kind := variant(opts, "ColumnByte", "ColumnBit")
	kernels, err := registryOf(opts).FileNames("RecurrencePlot", settings.Neighbourhood.Name(), class)
	if err != nil {
		return nil, err
	}
	return &RecurrencePlot{settings: settings, opts: opts, order: order, kind: kind, kernels: kernels}, nil
}

func checkNeighbourhood(neighbourhood rqa.Neighbourhood) error {
	switch neighbourhood.(type) {
	case rqa.FixedRadius:
		return nil
	case rqa.RadiusCorridor, rqa.FAN:
		return errors.E(fmt.Sprintf("engine: neighbourhood %q is not yet supported", neighbourhood.Name()))
	}
	return errors.E(fmt.Sprintf("engine: neighbourhood %q is not supported", neighbourhood.Name()))
}

func variant(opts Opts, byteClass, bitClass string) (string, matrixKind) {
	if opts.OptimisationsEnabled {
		return bitClass, bitKind
	}
	return byteClass, byteKind
}

func registryOf(opts Opts) *kernel.Registry {
	if opts.Registry != nil {
		return opts.Registry
	}
	return kernel.Default()
}
