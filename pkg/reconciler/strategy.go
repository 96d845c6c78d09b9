package reconciler

import (
	"fmt"
	"strings"

	"github.com/agentstation/roster/pkg/errors"
)

// Policy decides which rows carrying an identifier are dropped once the
// identifier has been copied within a group.
type Policy string

const (
	// PolicyConsuming uses every donor at most once. A donor that gives its
	// identifier away is removed. Recipients left over when donors run out
	// keep no identifier, and donors left over are kept.
	PolicyConsuming Policy = "consuming"
	// PolicyRetaining keeps the first donor, copies its identifier to every
	// recipient and removes every other donor in the group.
	PolicyRetaining Policy = "retaining"
)

// String returns the string representation of a policy.
func (p Policy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p Policy) Description() string {
	switch p {
	case PolicyConsuming:
		return "Each donor is used once and removed after donating"
	case PolicyRetaining:
		return "The first donor is kept and reused; other donors are removed"
	}
	return "Unknown policy"
}

// Policies lists the supported policies.
func Policies() []Policy {
	return []Policy{PolicyConsuming, PolicyRetaining}
}

// ParsePolicy converts a name into a Policy.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PolicyConsuming, PolicyRetaining:
		return p, nil
	}
	return "", &errors.ValidationError{
		Field:   "policy",
		Value:   s,
		Message: fmt.Sprintf("must be one of %s", joinNames(Policies())),
	}
}

// PipelineType names a composition of passes.
type PipelineType string

// String returns the string representation of a pipeline type.
func (p PipelineType) String() string {
	return string(p)
}

// Name returns the title-cased name of the pipeline type.
func (p PipelineType) Name() string {
	words := strings.Split(p.String(), "-")
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

const (
	// PipelineNameOnly runs a single consuming name pass.
	PipelineNameOnly PipelineType = "name-only"
	// PipelineTwoPass runs a name pass then an email pass, both retaining,
	// and keeps records that end without an identifier.
	PipelineTwoPass PipelineType = "two-pass"
	// PipelineThreePass runs consuming name and email passes, then removes
	// every record still without an identifier.
	PipelineThreePass PipelineType = "three-pass"
)

// Pipelines lists the supported pipelines.
func Pipelines() []PipelineType {
	return []PipelineType{PipelineNameOnly, PipelineTwoPass, PipelineThreePass}
}

// ParsePipeline converts a name into a PipelineType.
func ParsePipeline(s string) (PipelineType, error) {
	p := PipelineType(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PipelineNameOnly, PipelineTwoPass, PipelineThreePass:
		return p, nil
	}
	return "", &errors.ValidationError{
		Field:   "pipeline",
		Value:   s,
		Message: fmt.Sprintf("must be one of %s", joinNames(Pipelines())),
	}
}

// UsesEmail reports whether the pipeline runs an email pass.
func (p PipelineType) UsesEmail() bool {
	return p != PipelineNameOnly
}

// Filters reports whether the pipeline ends with the empty-identifier filter.
func (p PipelineType) Filters() bool {
	return p == PipelineThreePass
}

// defaultPolicies returns the name and email pass policies of a pipeline.
func (p PipelineType) defaultPolicies() (name, email Policy) {
	if p == PipelineTwoPass {
		return PolicyRetaining, PolicyRetaining
	}
	return PolicyConsuming, PolicyConsuming
}

func joinNames[T fmt.Stringer](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	return strings.Join(names, ", ")
}
