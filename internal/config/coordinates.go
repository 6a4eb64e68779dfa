package config

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// coordinateValidate checks coordinates parsed at the boundary.
// Group and name end up inside colon-separated wire keys, so they may not
// contain ':' themselves. The version is the trailing component and may.
var coordinateValidate = validator.New()

// GroupNameVersion identifies one version of one artifact.
// It is comparable and used directly as a map key.
type GroupNameVersion struct {
	Group   string `validate:"required,excludesall=:"`
	Name    string `validate:"required,excludesall=:"`
	Version string `validate:"required"`
}

// GroupAndName identifies an artifact regardless of version.
type GroupAndName struct {
	Group string `validate:"required,excludesall=:"`
	Name  string `validate:"required,excludesall=:"`
}

// NewGroupNameVersion builds a coordinate without validating it.
func NewGroupNameVersion(group, name, version string) GroupNameVersion {
	return GroupNameVersion{Group: group, Name: name, Version: version}
}

// ParseGroupNameVersion parses the wire form "group:name:version".
func ParseGroupNameVersion(s string) (GroupNameVersion, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return GroupNameVersion{}, fmt.Errorf("invalid coordinate %q: expected group:name:version", s)
	}
	gnv := GroupNameVersion{Group: parts[0], Name: parts[1], Version: parts[2]}
	if err := gnv.Validate(); err != nil {
		return GroupNameVersion{}, fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	return gnv, nil
}

// ParseGroupAndName parses the wire form "group:name".
func ParseGroupAndName(s string) (GroupAndName, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return GroupAndName{}, fmt.Errorf("invalid coordinate %q: expected group:name", s)
	}
	gan := GroupAndName{Group: parts[0], Name: parts[1]}
	if err := gan.Validate(); err != nil {
		return GroupAndName{}, fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	return gan, nil
}

// Validate reports whether every component is present and well formed.
func (g GroupNameVersion) Validate() error {
	return validateCoordinate(g)
}

// Validate reports whether every component is present and well formed.
func (g GroupAndName) Validate() error {
	return validateCoordinate(g)
}

func validateCoordinate(v any) error {
	err := coordinateValidate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", strings.ToLower(fe.Field()))
	case "excludesall":
		return fmt.Errorf("%s %q may not contain any of %q", strings.ToLower(fe.Field()), fe.Value(), fe.Param())
	default:
		return fmt.Errorf("%s failed %s validation", strings.ToLower(fe.Field()), fe.Tag())
	}
}

// GroupAndName drops the version.
func (g GroupNameVersion) GroupAndName() GroupAndName {
	return GroupAndName{Group: g.Group, Name: g.Name}
}

// String returns the wire form "group:name:version".
func (g GroupNameVersion) String() string {
	return g.Group + ":" + g.Name + ":" + g.Version
}

// String returns the wire form "group:name".
func (g GroupAndName) String() string {
	return g.Group + ":" + g.Name
}

func compareGroupNameVersion(a, b GroupNameVersion) int {
	return cmp.Or(
		cmp.Compare(a.Group, b.Group),
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Version, b.Version),
	)
}
