// Package kernel holds the registry that names the device-code resources for
// each computation variant. The registry is a JSON document mapping
// (computation class, neighbourhood class, concrete class) triples to an
// ordered list of kernel file names; the engine treats it as an opaque
// dispatch table.
package kernel

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/grailbio/base/errors"
)

// Entry maps one computation variant to its kernel file names.
type Entry struct {
	ComputationClass   string   `json:"computation_class"`
	NeighbourhoodClass string   `json:"neighbourhood_class"`
	Class              string   `json:"class"`
	KernelFileNames    []string `json:"kernel_file_names"`
}

// Registry is a parsed kernel configuration.
type Registry struct {
	entries []Entry
}

type configDocument struct {
	ConfigData []Entry `json:"config_data"`
}

// Parse decodes a registry from its JSON representation.
func Parse(data []byte) (*Registry, error) {
	var doc configDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.E(err, "kernel: parsing registry")
	}
	if len(doc.ConfigData) == 0 {
		return nil, errors.E("kernel: registry has no entries")
	}
	return &Registry{entries: doc.ConfigData}, nil
}

// Load reads and parses a registry file.
func Load(path string) (*Registry, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.E(err, "kernel: reading registry", path)
	}
	return Parse(data)
}

// FileNames returns the kernel file names registered for the triple.
func (r *Registry) FileNames(computationClass, neighbourhoodClass, class string) ([]string, error) {
	for _, e := range r.entries {
		if e.ComputationClass == computationClass &&
			e.NeighbourhoodClass == neighbourhoodClass &&
			e.Class == class {
			return e.KernelFileNames, nil
		}
	}
	return nil, errors.E(fmt.Sprintf("kernel: no kernels registered for class %q (%s, %s)",
		class, computationClass, neighbourhoodClass))
}

// defaultConfig is the compiled-in registry covering the fixed radius
// variants the engine ships with.
const defaultConfig = `{
  "config_data": [
    {
      "computation_class": "RQA",
      "neighbourhood_class": "FixedRadius",
      "class": "ColumnMatByteRec",
      "kernel_file_names": ["clear_buffer.cl", "vertical_byte.cl", "diagonal.cl", "diagonal_symmetric.cl"]
    },
    {
      "computation_class": "RQA",
      "neighbourhood_class": "FixedRadius",
      "class": "ColumnMatBitRec",
      "kernel_file_names": ["clear_buffer.cl", "vertical_bit.cl", "diagonal_bit.cl", "diagonal_bit_symmetric.cl"]
    },
    {
      "computation_class": "RecurrencePlot",
      "neighbourhood_class": "FixedRadius",
      "class": "ColumnByte",
      "kernel_file_names": ["clear_buffer.cl", "create_matrix_byte.cl"]
    },
    {
      "computation_class": "RecurrencePlot",
      "neighbourhood_class": "FixedRadius",
      "class": "ColumnBit",
      "kernel_file_names": ["clear_buffer.cl", "create_matrix_bit.cl"]
    }
  ]
}`

// Default returns the compiled-in registry.
func Default() *Registry {
	r, err := Parse([]byte(defaultConfig))
	if err != nil {
		panic(err)
	}
	return r
}
