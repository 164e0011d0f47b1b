package catalog

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// DomainQuery prefixes every content hash. The version suffix leaves room
// for a future change of canonical form.
const DomainQuery = "jqlkit/query/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash returns the content hash of an entry. The name is not part of it.
// Strings are NFC-normalised first, so canonically equivalent spellings hash
// the same.
func Hash(e Entry) (string, error) {
	canonical, err := canonicalContent(e)
	if err != nil {
		return "", fmt.Errorf("hash %q: %w", e.Name, err)
	}
	return hashWithDomain(DomainQuery, canonical), nil
}

// canonicalContent renders [jql, fields, description] as compact JSON with
// NFC-normalised strings and HTML escaping disabled.
func canonicalContent(e Entry) ([]byte, error) {
	fields := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		fields[i] = norm.NFC.String(f)
	}
	doc := []any{
		norm.NFC.String(e.JQL),
		fields,
		norm.NFC.String(e.Description),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// marshalFields stores fields as a JSON array ("[]" when empty).
func marshalFields(fields []string) (string, error) {
	if fields == nil {
		fields = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fields); err != nil {
		return "", fmt.Errorf("marshal fields: %w", err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

func unmarshalFields(data string) ([]string, error) {
	var fields []string
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}
