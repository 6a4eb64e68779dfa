package value

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for algorithm migration.
const (
	DomainBreak    = "breakledger/break/v1"
	DomainDocument = "breakledger/document/v2"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash returns the domain-separated SHA-256 of the canonical JSON of v after
// NFC normalisation. Values that differ only in Unicode normal form share a
// hash.
func Hash(domain string, v Value) (string, error) {
	normalized, err := NormalizeNFC(v)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", domain, err)
	}
	canonical, err := MarshalCanonical(normalized)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", domain, err)
	}
	return hashWithDomain(domain, canonical), nil
}

// HashCanonical hashes canonical bytes as given, without normalisation.
func HashCanonical(domain string, canonical []byte) string {
	return hashWithDomain(domain, canonical)
}

// NormalizeNFC returns a copy of v with every string and object key in NFC.
// Keys that only differ in normal form collide and are rejected.
func NormalizeNFC(v Value) (Value, error) {
	switch val := v.(type) {
	case String:
		return String(norm.NFC.String(string(val))), nil
	case Array:
		out := make(Array, len(val))
		for i, elem := range val {
			n, err := NormalizeNFC(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case Object:
		out := make(Object, len(val))
		for k, elem := range val {
			nk := norm.NFC.String(k)
			if _, dup := out[nk]; dup {
				return nil, fmt.Errorf("duplicate key %q after NFC normalization", nk)
			}
			n, err := NormalizeNFC(elem)
			if err != nil {
				return nil, fmt.Errorf("value for key %q: %w", k, err)
			}
			out[nk] = n
		}
		return out, nil
	default:
		return v, nil
	}
}
