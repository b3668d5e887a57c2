package helpers

import (
	"strconv"
	"time"
)

// ShowTimeLayout is the wire format for show start times, both on the
// create-show form and on rendered detail pages.
const ShowTimeLayout = "2006-01-02 15:04:05"

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

func ParseShowTime(s string) (time.Time, error) {
	return time.Parse(ShowTimeLayout, s)
}

func FormatShowTime(t time.Time) string {
	return t.Format(ShowTimeLayout)
}
