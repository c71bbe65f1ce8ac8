package osclass

import (
	"fmt"
	"strings"
)

// Bucket is the compliance-relevant category of an operating system.
type Bucket int

const (
	// Other is any raw string not present in the lookup table.
	Other Bucket = iota
	Win10
	Win11
	Win8
	Win7
	WinXP
	WinServer
	Cisco
	NotFound
)

// NotFoundLabel is both the NotFound display label and the sentinel the gap
// filler writes into a missing Operating System cell.
const NotFoundLabel = "Not Found"

var labels = map[Bucket]string{
	Other:     "Other",
	Win10:     "Win10",
	Win11:     "Win11",
	Win8:      "Win8",
	Win7:      "Win7",
	WinXP:     "WinXP",
	WinServer: "Win Server",
	Cisco:     "Cisco",
	NotFound:  NotFoundLabel,
}

// Buckets lists every bucket in declaration order.
var Buckets = []Bucket{Other, Win10, Win11, Win8, Win7, WinXP, WinServer, Cisco, NotFound}

func (b Bucket) String() string {
	if l, ok := labels[b]; ok {
		return l
	}
	return fmt.Sprintf("Bucket(%d)", int(b))
}

// ParseBucket accepts a display label ("Win Server") or its spaceless form
// ("WinServer"), case-insensitively.
func ParseBucket(s string) (Bucket, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for _, b := range Buckets {
		if strings.ToLower(strings.ReplaceAll(labels[b], " ", "")) == key {
			return b, nil
		}
	}
	return Other, fmt.Errorf("unknown os bucket %q", s)
}

func (b Bucket) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *Bucket) UnmarshalText(text []byte) error {
	v, err := ParseBucket(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Older reports whether b is one of the legacy desktop releases grouped as
// "older OS" in the KPIs.
func (b Bucket) Older() bool {
	return b == Win8 || b == Win7 || b == WinXP
}
