package ulid

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id := Generate()

	assert.False(t, id.IsZero(), "Generated ULID should not be zero")
	assert.Empty(t, id.Prefix())
	assert.WithinDuration(t, time.Now(), id.Time(), time.Second)
}

func TestGenerateWithPrefix(t *testing.T) {
	for _, prefix := range []string{PrefixScan, PrefixFile, PrefixEntity} {
		id := GenerateWithPrefix(prefix)

		assert.Equal(t, prefix, id.Prefix())
		assert.True(t, strings.HasPrefix(id.String(), prefix+PrefixSeparator))
	}
}

func TestParse(t *testing.T) {
	raw := Generate()
	parsed, err := Parse(raw.String())
	require.NoError(t, err)
	assert.Equal(t, raw, parsed)

	prefixed := GenerateWithPrefix(PrefixScan)
	parsed, err = Parse(prefixed.String())
	require.NoError(t, err)
	assert.Equal(t, prefixed, parsed)
	assert.Equal(t, PrefixScan, parsed.Prefix())

	_, err = Parse("invalid-ulid")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"plain", Generate().String(), true},
		{"scan id", ScanID(), true},
		{"file id", FileID(), true},
		{"entity id", EntityID(), true},
		{"garbage", "invalid", false},
		{"garbage with prefix", "scan-invalid", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.id))
		})
	}
}

func TestCompare(t *testing.T) {
	id1 := NewWithTime(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	id2 := NewWithTime(time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, -1, id1.Compare(id2))
	assert.Equal(t, 1, id2.Compare(id1))
	assert.Equal(t, 0, id1.Compare(id1))

	prefixed := id1
	prefixed.prefix = PrefixScan
	assert.Equal(t, 0, id1.Compare(prefixed), "prefix should not affect comparison")
}

func TestMonotonicWithinMillisecond(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	prev := NewWithTime(ts)
	for i := 0; i < 100; i++ {
		next := NewWithTime(ts)
		require.Equal(t, -1, prev.Compare(next))
		prev = next
	}
}

func TestJSON(t *testing.T) {
	type record struct {
		ID ULID `json:"id"`
	}

	in := record{ID: GenerateWithPrefix(PrefixEntity)}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ent-`)

	var out record
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.ID, out.ID)

	assert.Error(t, json.Unmarshal([]byte(`{"id":"nope"}`), &out))
}

func TestSQL(t *testing.T) {
	id := GenerateWithPrefix(PrefixFile)

	var valuer driver.Valuer = id
	v, err := valuer.Value()
	require.NoError(t, err)
	assert.Equal(t, id.String(), v)

	tests := []struct {
		name    string
		src     interface{}
		want    ULID
		wantErr bool
	}{
		{"string", id.String(), id, false},
		{"bytes", []byte(id.String()), id, false},
		{"nil", nil, Nil, false},
		{"int", 42, Nil, true},
		{"bad string", "file-xyz", Nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ULID
			err := got.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
