package requests

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Visibility - who can see a mailing or template
type Visibility int

const (
	VisibilityPrivate Visibility = 0
	VisibilityShared  Visibility = 1
)

var visibilityAliases = map[Visibility]string{
	VisibilityPrivate: "Private",
	VisibilityShared:  "Shared",
}

// ParseVisibility looks a visibility up by its alias, as returned in responses
func ParseVisibility(alias string) (Visibility, error) {
	alias = strings.TrimSpace(alias)
	for v, a := range visibilityAliases {
		if strings.EqualFold(a, alias) {
			return v, nil
		}
	}
	return 0, errors.Errorf("unknown visibility %q", alias)
}

// ParseVisibilityValue accepts an alias or the numeric wire value
func ParseVisibilityValue(value string) (Visibility, error) {
	if i, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		if v := Visibility(i); v.Valid() {
			return v, nil
		}
		return 0, errors.Errorf("unknown visibility %q", value)
	}
	return ParseVisibility(value)
}

func (v Visibility) Valid() bool {
	_, ok := visibilityAliases[v]
	return ok
}

// Value is the wire value sent in requests
func (v Visibility) Value() string {
	return strconv.Itoa(int(v))
}

// Alias is the wire value returned in responses
func (v Visibility) Alias() string {
	return visibilityAliases[v]
}

func (v Visibility) String() string {
	if a, ok := visibilityAliases[v]; ok {
		return a
	}
	return "Visibility(" + strconv.Itoa(int(v)) + ")"
}

func (v Visibility) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, errors.Errorf("unknown visibility %d", int(v))
	}
	return []byte(v.Alias()), nil
}

func (v *Visibility) UnmarshalText(text []byte) error {
	parsed, err := ParseVisibility(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
