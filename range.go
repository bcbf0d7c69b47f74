package cfiloc

import (
	"strconv"
	"strings"
)

// Range is an EPUB CFI range: a path shared by both ends followed by the
// diverging start and end parts, each ending in a character offset.
type Range struct {
	Common string `json:"common"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// String formats the range as epubcfi(common,start,end).
func (r Range) String() string {
	return "epubcfi(" + r.Common + "," + r.Start + "," + r.End + ")"
}

// SanitizePath strips the trailing ":offset" from a location and then drops
// its last step, which addresses the text node. Locations without any "/"
// sanitize to the empty string.
func SanitizePath(location string) string {
	path, _, _ := strings.Cut(location, ":")
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return ""
	}
	return path[:i]
}

// NewRange builds the range from startOffset in the start location to
// endOffset in the end location.
//
// The common path is the longest run of equal steps shared by both sanitized
// paths. Each side keeps whatever follows the common path's length in bytes,
// and gets a "/1" text node step plus its offset appended.
func NewRange(start, end string, startOffset, endOffset int) Range {
	startPath := SanitizePath(start)
	endPath := SanitizePath(end)

	// The first element is the empty string before the leading slash.
	startSteps := strings.Split(startPath, "/")[1:]
	endSteps := strings.Split(endPath, "/")[1:]

	var common strings.Builder
	for i := 0; i < len(startSteps) && i < len(endSteps) && startSteps[i] == endSteps[i]; i++ {
		common.WriteByte('/')
		common.WriteString(startSteps[i])
	}
	n := common.Len()

	return Range{
		Common: common.String(),
		Start:  startPath[n:] + "/1:" + strconv.Itoa(startOffset),
		End:    endPath[n:] + "/1:" + strconv.Itoa(endOffset),
	}
}
