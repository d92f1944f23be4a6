// Package ulid wraps github.com/oklog/ulid/v2 with prefixed identifiers for
// scans, files and entities. IDs sort by creation time, which keeps scan
// listings in chronological order without an extra index.
package ulid

import (
	"bytes"
	"crypto/rand"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefixes for the kinds of identifiers the analyzer stores
const (
	// PrefixScan marks a repository scan
	PrefixScan = "scan"

	// PrefixFile marks one parsed file within a scan
	PrefixFile = "file"

	// PrefixEntity marks one recovered declaration
	PrefixEntity = "ent"

	// PrefixSeparator is used to separate the prefix from the ULID
	PrefixSeparator = "-"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
	// Nil represents the zero value of ULID
	Nil = ULID{ulid.ULID{}, ""}
)

// ULID is a ulid.ULID with an optional prefix
type ULID struct {
	ulid.ULID
	prefix string
}

// Generate creates a new ULID with the current timestamp
func Generate() ULID {
	return NewWithTime(time.Now())
}

// GenerateWithPrefix creates a new ULID with the current timestamp and a prefix
func GenerateWithPrefix(prefix string) ULID {
	id := NewWithTime(time.Now())
	id.prefix = prefix
	return id
}

// NewWithTime creates a new ULID with a specific timestamp.
// Entropy is monotonic so IDs created in the same millisecond still sort in creation order.
func NewWithTime(t time.Time) ULID {
	entropyLock.Lock()
	id := ulid.MustNew(ulid.Timestamp(t), entropy)
	entropyLock.Unlock()
	return ULID{id, ""}
}

// Parse parses a plain ("01AN4Z07BY79KA1307SR9X4MV3") or prefixed
// ("scan-01AN4Z07BY79KA1307SR9X4MV3") ULID string
func Parse(id string) (ULID, error) {
	prefix, rawID, found := strings.Cut(id, PrefixSeparator)
	if !found {
		prefix, rawID = "", id
	}

	parsed, err := ulid.Parse(rawID)
	if err != nil {
		return ULID{}, fmt.Errorf("parsing ulid %q: %w", id, err)
	}

	return ULID{parsed, prefix}, nil
}

// Validate reports whether id is a valid plain or prefixed ULID
func Validate(id string) bool {
	_, err := Parse(id)
	return err == nil
}

// Compare compares two ULIDs lexicographically, ignoring prefixes
func (u ULID) Compare(other ULID) int {
	return bytes.Compare(u.ULID[:], other.ULID[:])
}

// IsZero returns true if the ULID is the zero value
func (u ULID) IsZero() bool {
	return u.ULID == ulid.ULID{}
}

// Prefix returns the prefix of the ULID
func (u ULID) Prefix() string {
	return u.prefix
}

// String returns "prefix-ulid", or the bare ULID when there is no prefix
func (u ULID) String() string {
	if u.prefix != "" {
		return u.prefix + PrefixSeparator + u.ULID.String()
	}
	return u.ULID.String()
}

// Time returns the timestamp component of the ULID
func (u ULID) Time() time.Time {
	return ulid.Time(u.ULID.Time())
}

// MarshalJSON encodes the ULID as its string form
func (u ULID) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON decodes a ULID from its string form
func (u *ULID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Value implements driver.Valuer; ULIDs are stored as text
func (u ULID) Value() (driver.Value, error) {
	return u.String(), nil
}

// Scan implements sql.Scanner
func (u *ULID) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		parsed, err := Parse(src)
		if err != nil {
			return err
		}
		*u = parsed
		return nil
	case []byte:
		parsed, err := Parse(string(src))
		if err != nil {
			return err
		}
		*u = parsed
		return nil
	}
	return fmt.Errorf("cannot scan %T into ULID", src)
}

// ScanID generates a new scan identifier
func ScanID() string {
	return GenerateWithPrefix(PrefixScan).String()
}

// FileID generates a new file identifier
func FileID() string {
	return GenerateWithPrefix(PrefixFile).String()
}

// EntityID generates a new entity identifier
func EntityID() string {
	return GenerateWithPrefix(PrefixEntity).String()
}
