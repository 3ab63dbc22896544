// Package escalation contains the pure business logic for ticket escalation:
// the typed config document, its defaults, guards, and the escalation plan.
// Nothing in this package performs I/O.
package escalation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// DocumentID is the fixed _id of the config document inside the plugin partition.
const DocumentID = "escalatethread"

// Terminology controls the word used for a support case in user-facing text.
type Terminology string

const (
	TerminologyThread Terminology = "thread"
	TerminologyTicket Terminology = "ticket"
)

// ParseTerminology returns the terminology named by s. Matching is exact.
func ParseTerminology(s string) (Terminology, bool) {
	switch Terminology(s) {
	case TerminologyThread, TerminologyTicket:
		return Terminology(s), true
	}
	return "", false
}

func (t Terminology) String() string { return string(t) }

// Snowflake is a platform object ID. Older documents stored IDs as JSON
// numbers, so decoding accepts both numbers and strings.
type Snowflake string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Snowflake) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Snowflake(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("snowflake must be a string or integer, got %s", string(data))
	}
	if _, err := n.Int64(); err != nil {
		return fmt.Errorf("snowflake must be an integer, got %s", n.String())
	}
	*s = Snowflake(n.String())
	return nil
}

func (s Snowflake) String() string { return string(s) }

// Target is where an escalation sends a ticket.
type Target struct {
	Role     Snowflake `json:"role"`
	Category Snowflake `json:"category"`
}

// Config is the per-guild escalation configuration.
type Config struct {
	Terminology Terminology
	Options     map[string]Target
}

// DefaultConfig returns the configuration used for guilds with no stored document.
func DefaultConfig() Config {
	return Config{
		Terminology: TerminologyThread,
		Options:     map[string]Target{},
	}
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (c Config) Clone() Config {
	out := Config{Terminology: c.Terminology, Options: make(map[string]Target, len(c.Options))}
	for k, v := range c.Options {
		out.Options[k] = v
	}
	return out
}

// OptionNames returns the configured destination names in sorted order.
func (c Config) OptionNames() []string {
	names := make([]string, 0, len(c.Options))
	for name := range c.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a destination by name, normalising case first.
func (c Config) Lookup(name string) (Target, bool) {
	target, ok := c.Options[NormalizeName(name)]
	return target, ok
}

// NormalizeName lower-cases a destination name. Names are stored lower-cased.
func NormalizeName(name string) string {
	return strings.ToLower(name)
}
