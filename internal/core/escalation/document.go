package escalation

import (
	"encoding/json"
	"fmt"
)

// Document keys.
const (
	KeyTerminology = "terminology"
	KeyOptions     = "options"
)

// Document is the stored form of the config: top-level keys mapped to raw JSON.
// Keys this package does not know about are carried through untouched.
type Document map[string]json.RawMessage

// DefaultKeys lists the keys every loaded document must carry.
func DefaultKeys() []string {
	return []string{KeyTerminology, KeyOptions}
}

// DefaultDocument returns DefaultConfig in stored form.
func DefaultDocument() Document {
	doc, _ := Encode(DefaultConfig())
	return doc
}

// Backfill inserts the default value for every default key absent from doc.
// It returns a new document and the keys that were added, in DefaultKeys order.
func Backfill(doc Document) (Document, []string) {
	defaults := DefaultDocument()
	out := make(Document, len(doc)+len(defaults))
	for k, v := range doc {
		out[k] = v
	}

	var missing []string
	for _, key := range DefaultKeys() {
		if _, ok := out[key]; !ok {
			out[key] = defaults[key]
			missing = append(missing, key)
		}
	}
	return out, missing
}

// Decode converts a stored document into a Config, rejecting malformed data.
// Every default key must be present; run Backfill first.
func Decode(doc Document) (Config, error) {
	cfg := Config{}

	rawTerm, ok := doc[KeyTerminology]
	if !ok {
		return Config{}, fmt.Errorf("config document is missing %q", KeyTerminology)
	}
	var term string
	if err := json.Unmarshal(rawTerm, &term); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyTerminology, err)
	}
	parsed, ok := ParseTerminology(term)
	if !ok {
		return Config{}, fmt.Errorf("invalid %s %q: must be thread or ticket", KeyTerminology, term)
	}
	cfg.Terminology = parsed

	rawOptions, ok := doc[KeyOptions]
	if !ok {
		return Config{}, fmt.Errorf("config document is missing %q", KeyOptions)
	}
	var options map[string]Target
	if err := json.Unmarshal(rawOptions, &options); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyOptions, err)
	}
	if options == nil {
		options = map[string]Target{}
	}
	for name, target := range options {
		if target.Role == "" || target.Category == "" {
			return Config{}, fmt.Errorf("invalid option %q: role and category are required", name)
		}
	}
	cfg.Options = options

	return cfg, nil
}

// Encode converts a Config into its stored fields. The _id key is owned by the
// store and is not included.
func Encode(cfg Config) (Document, error) {
	term, err := json.Marshal(string(cfg.Terminology))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", KeyTerminology, err)
	}
	options := cfg.Options
	if options == nil {
		options = map[string]Target{}
	}
	opts, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", KeyOptions, err)
	}
	return Document{
		KeyTerminology: term,
		KeyOptions:     opts,
	}, nil
}
