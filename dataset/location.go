package dataset

import (
	"fmt"
	"strings"
)

// Location is a parsed dataset root of the form s3://bucket/prefix.
type Location struct {
	Bucket string
	Prefix string
}

func ParseLocation(root string) (Location, error) {
	rest, ok := strings.CutPrefix(root, "s3://")
	if !ok {
		return Location{}, fmt.Errorf("dataset root %q: expected s3://BUCKET/PREFIX", root)
	}

	bucket, prefix, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || strings.Trim(prefix, "/") == "" {
		return Location{}, fmt.Errorf("dataset root %q: missing bucket or dataset path", root)
	}

	return Location{Bucket: bucket, Prefix: strings.Trim(prefix, "/")}, nil
}

// String renders the location back as an s3:// URI without a trailing slash.
func (l Location) String() string {
	return "s3://" + l.Bucket + "/" + l.Prefix
}
