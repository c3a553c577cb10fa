package policies

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"fatpack/internal/types"
)

// ResourceNamingPolicy applies the package-name-prefix convention to
// resource files.  Warn mode logs each violation and lets packaging
// continue; reject mode fails the run on the first batch of
// violations.  Warn is the default.
type ResourceNamingPolicy struct {
	Mode types.NamingPolicyMode
}

func NewResourceNamingPolicy(mode types.NamingPolicyMode) ResourceNamingPolicy {
	if mode == "" {
		mode = types.NamingPolicyWarn
	}
	return ResourceNamingPolicy{Mode: mode}
}

func (p ResourceNamingPolicy) Apply(ctx context.Context, violations []types.ResourceViolation) error {
	if len(violations) == 0 {
		return nil
	}
	for _, violation := range violations {
		log.Ctx(ctx).Warn().
			Str("resource", violation.Path).
			Str("expected_prefix", violation.Expected).
			Msg("resource name missing package prefix")
	}
	if p.Mode != types.NamingPolicyReject {
		return nil
	}
	names := make([]string, 0, len(violations))
	for _, violation := range violations {
		names = append(names, violation.Path)
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("resource naming policy rejected: %s", strings.Join(names, ", ")))
}
