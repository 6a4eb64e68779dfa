package codec

import (
	"fmt"

	"github.com/roach88/breakledger/internal/config"
	"github.com/roach88/breakledger/internal/value"
)

// Canonical returns the RFC 8785 form of the effective document, in the v2
// layout. Documents that are Equal have the same canonical form.
func Canonical(doc config.Document) ([]byte, error) {
	out, err := value.MarshalCanonical(encode(doc).toValue())
	if err != nil {
		return nil, fmt.Errorf("canonical document: %w", err)
	}
	return out, nil
}

// DocumentHash returns the content address of the effective document.
// Documents that only differ in the Unicode normal form of their text share
// an address; Canonical keeps the difference.
func DocumentHash(doc config.Document) (string, error) {
	hash, err := value.Hash(value.DomainDocument, encode(doc).toValue())
	if err != nil {
		return "", fmt.Errorf("document hash: %w", err)
	}
	return hash, nil
}
