package models

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DateOnly accepts either "2006-01-02" or a full RFC3339 timestamp.
type DateOnly struct {
	time.Time
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	d.Time = t.UTC()
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// Missing reports an absent or empty date. An empty string decodes to the
// zero time.
func (d *DateOnly) Missing() bool {
	return d == nil || d.IsZero()
}
