package multicast

import (
	"fmt"
	"strings"

	"github.com/kbukum/seqshare/errors"
	"github.com/kbukum/seqshare/validation"
)

// Mode selects how a Sequence hands produced slots to its cursors.
type Mode int

const (
	// ModeShare hands each value to exactly one cursor.
	ModeShare Mode = iota
	// ModePublish broadcasts from the live edge.
	ModePublish
	// ModeMemoize replays the full history to every cursor.
	ModeMemoize
)

func (m Mode) String() string {
	switch m {
	case ModeShare:
		return "share"
	case ModePublish:
		return "publish"
	case ModeMemoize:
		return "memoize"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Policy is a Mode plus, for ModeMemoize, an optional cap on distinct
// reading cursors. Readers == 0 means unbounded.
type Policy struct {
	Mode    Mode
	Readers int
}

// Predefined policies.
var (
	SharePolicy   = Policy{Mode: ModeShare}
	PublishPolicy = Policy{Mode: ModePublish}
	MemoizePolicy = Policy{Mode: ModeMemoize}
)

// MemoizeNPolicy returns a memoizing policy limited to readers cursors.
func MemoizeNPolicy(readers int) Policy {
	return Policy{Mode: ModeMemoize, Readers: readers}
}

// ParsePolicy resolves a policy by name. readers > 0 caps a memoize policy
// and is rejected for the other modes.
func ParsePolicy(name string, readers int) (Policy, error) {
	var p Policy
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "share":
		p = SharePolicy
	case "publish":
		p = PublishPolicy
	case "memoize":
		p = MemoizeNPolicy(readers)
	default:
		return Policy{}, errors.InvalidInput("policy", fmt.Sprintf("unknown policy %q", name))
	}
	if p.Mode != ModeMemoize && readers != 0 {
		return Policy{}, errors.InvalidInput("readers", "readers only applies to the memoize policy")
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate checks that the policy can back a Sequence.
func (p Policy) Validate() error {
	v := validation.New().
		Custom(p.Mode >= ModeShare && p.Mode <= ModeMemoize, "mode", "is not a known mode").
		Min("readers", p.Readers, 0)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Capped reports whether the policy limits distinct readers.
func (p Policy) Capped() bool {
	return p.Mode == ModeMemoize && p.Readers > 0
}

// String returns the policy name, e.g. "memoize(2)".
func (p Policy) String() string {
	if p.Capped() {
		return fmt.Sprintf("memoize(%d)", p.Readers)
	}
	return p.Mode.String()
}

// label is the low-cardinality metric attribute for the policy.
func (p Policy) label() string {
	if p.Capped() {
		return "memoize_n"
	}
	return p.Mode.String()
}

// startsAtOrigin reports whether new cursors replay from index 0.
func (p Policy) startsAtOrigin() bool {
	return p.Mode == ModeMemoize
}

// evicts reports whether the buffer may drop consumed slots.
func (p Policy) evicts() bool {
	return p.Mode != ModeMemoize || p.Capped()
}

// tracksReaders reports whether cursors hold per-slot reader counts.
func (p Policy) tracksReaders() bool {
	return p.Mode == ModePublish || p.Capped()
}
