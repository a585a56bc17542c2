package toolpath

import (
	"cmp"
	"fmt"
	"strings"
)

// Kind identifies what a piece of geometry is for.
type Kind int

const (
	// KindInvalid is the zero Kind. Labels with this kind are invalid.
	KindInvalid Kind = iota
	KindPerimeter
	KindInfill
	KindInsets
	KindSupport
	KindConnection
	KindRaft
)

var kindNames = map[Kind]string{
	KindInvalid:    "invalid",
	KindPerimeter:  "perimeter",
	KindInsets:     "insets",
	KindInfill:     "infill",
	KindSupport:    "support",
	KindRaft:       "raft",
	KindConnection: "connection",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	s := strings.ToLower(string(b))
	for kind, name := range kindNames {
		if name == s {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", s)
}

// Owner identifies which object a piece of geometry belongs to.
type Owner int

const (
	OwnerModel Owner = iota
	OwnerSupport
)

// String implements fmt.Stringer.
func (o Owner) String() string {
	switch o {
	case OwnerModel:
		return "model"
	case OwnerSupport:
		return "support"
	default:
		return fmt.Sprintf("owner(%d)", int(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Owner) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Owner) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "model", "":
		*o = OwnerModel
	case "support":
		*o = OwnerSupport
	default:
		return fmt.Errorf("unknown owner %q", string(b))
	}
	return nil
}

// ConnectionPriority is the priority of synthetic travel connections.
const ConnectionPriority = -1

// Label tags geometry with its purpose and ordering preference.
// Two labels are equal only if all three fields match.
type Label struct {
	Kind     Kind  `json:"kind" toml:"kind"`
	Owner    Owner `json:"owner" toml:"owner"`
	Priority int   `json:"priority" toml:"priority"`
}

// Connection returns the label carried by synthetic travel connections.
func Connection() Label {
	return Label{Kind: KindConnection, Owner: OwnerModel, Priority: ConnectionPriority}
}

// New returns a label for model geometry.
func New(kind Kind, priority int) Label {
	return Label{Kind: kind, Owner: OwnerModel, Priority: priority}
}

// Valid reports whether the label is initialized.
func (l Label) Valid() bool { return l.Kind != KindInvalid }

// IsConnection reports whether l marks synthetic travel.
func (l Label) IsConnection() bool { return l.Kind == KindConnection }

// Compare orders labels by priority only.
func (l Label) Compare(o Label) int { return cmp.Compare(l.Priority, o.Priority) }

// String implements fmt.Stringer.
func (l Label) String() string {
	return fmt.Sprintf("%s/%s/%d", l.Kind, l.Owner, l.Priority)
}
