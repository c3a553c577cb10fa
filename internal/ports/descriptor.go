package ports

import "fatpack/internal/types"

type DescriptorPort interface {
	LoadDescriptor(path string) (types.Descriptor, error)
}
