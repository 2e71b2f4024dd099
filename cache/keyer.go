package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// MaxKeyLength is the longest key emitted verbatim. Longer variable sets are
// replaced by a hash of their canonical form.
const MaxKeyLength = 512

// Keyer derives request identity keys.
//
// Contract:
//   - Determinism: logically identical requests (same operation, same
//     variables regardless of key order, same auth mode) yield the same key.
//   - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// Key returns "<operation>:<mode>:<canonical variables>".
	Key(operation, mode string, variables any) (string, error)
}

// DefaultKeyer emits readable keys and hashes oversized variable sets.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// Key generates a deterministic request identity key.
func (k *DefaultKeyer) Key(operation, mode string, variables any) (string, error) {
	if err := ValidateOperation(operation); err != nil {
		return "", err
	}
	if mode == "" {
		return "", fmt.Errorf("%w: empty auth mode", ErrInvalidKey)
	}

	canonical, err := Canonicalize(variables)
	if err != nil {
		return "", fmt.Errorf("cache: failed to canonicalize variables: %w", err)
	}

	key := operation + ":" + mode + ":" + string(canonical)
	if len(key) <= MaxKeyLength {
		return key, nil
	}
	hash := sha256.Sum256(canonical)
	return operation + ":" + mode + ":sha256:" + hex.EncodeToString(hash[:8]), nil
}

// OperationPrefix is the prefix shared by every key of an operation.
func OperationPrefix(operation string) string {
	return operation + ":"
}

// ValidateOperation checks that an operation name can be used as a key segment.
func ValidateOperation(operation string) error {
	if strings.TrimSpace(operation) == "" {
		return ErrInvalidOperation
	}
	if strings.ContainsAny(operation, ":\n\r") {
		return ErrInvalidOperation
	}
	return nil
}

// Canonicalize produces a deterministic JSON representation of v.
//
// v is first normalized through encoding/json so structs, typed maps and
// numbers all reduce to the same generic tree; object keys are then sorted at
// every depth. A nil or empty variable set canonicalizes to "{}".
func Canonicalize(v any) ([]byte, error) {
	if v == nil {
		return []byte("{}"), nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	if tree == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	if err := writeCanonical(&buf, tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(name)
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		scalar, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(scalar)
	}
	return nil
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
