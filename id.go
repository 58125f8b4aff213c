package zenvoice

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// ID identifies customers, invoices and line items. It is the generation time
// in milliseconds since the Unix epoch. The zero ID means "not assigned yet"
// and is persisted as null.
type ID int64

// IsZero reports whether the id has not been assigned.
func (id ID) IsZero() bool { return id == 0 }

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseID parses the decimal representation of an ID.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = 0
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if v, err := n.Int64(); err == nil {
		*id = ID(v)
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return err
	}
	*id = ID(f)
	return nil
}

// idGenerator hands out strictly increasing timestamp ids.
type idGenerator struct {
	now  func() time.Time
	last ID
}

func newIDGenerator(now func() time.Time) *idGenerator {
	if now == nil {
		now = time.Now
	}
	return &idGenerator{now: now}
}

// Next returns the current time in milliseconds, or last+1 when the clock has
// not moved since the previous call.
func (g *idGenerator) Next() ID {
	id := ID(g.now().UnixMilli())
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// observe makes sure future ids are above id.
func (g *idGenerator) observe(id ID) {
	if id > g.last {
		g.last = id
	}
}
