package dataset

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mreid-moz/parquet2hive/storage"
)

// ErrEmptyDataset reports that a version prefix holds no eligible sample
// object (only pseudo-directories or underscore-prefixed control files).
var ErrEmptyDataset = errors.New("no data files found for version")

var versionPattern = regexp.MustCompile(`^v[0-9]+$`)

// Version is one v<N> sub-prefix of a dataset root.
type Version struct {
	Prefix  string // full key prefix, ends with "/"
	Dataset string // dataset name, the segment before the version
	Number  int
}

type Resolver struct {
	store storage.Store
}

func NewResolver(store storage.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve lists the immediate children of the dataset root and returns the
// ones that follow the v<N> naming convention, sorted by version number
// ascending. Children that do not follow the convention are logged and
// skipped; an empty result is not an error.
func (r *Resolver) Resolve(ctx context.Context, bucket, prefix string) ([]Version, error) {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	children, err := r.store.ListCommonPrefixes(ctx, bucket, prefix, "/")
	if err != nil {
		return nil, fmt.Errorf("resolving versions under %s: %w", prefix, err)
	}

	var versions []Version
	for _, child := range children {
		segments := strings.Split(strings.TrimSuffix(child, "/"), "/")
		if len(segments) < 2 {
			log.Printf("ignoring %s: expected .../DATASET/vN/", child)
			continue
		}

		last := segments[len(segments)-1]
		if !versionPattern.MatchString(last) {
			log.Printf("ignoring %s: %q does not match v<N>", child, last)
			continue
		}

		number, err := strconv.Atoi(last[1:])
		if err != nil {
			log.Printf("ignoring %s: %v", child, err)
			continue
		}

		versions = append(versions, Version{
			Prefix:  child,
			Dataset: segments[len(segments)-2],
			Number:  number,
		})
	}

	sort.Slice(versions, func(i, j int) bool {
		if versions[i].Dataset != versions[j].Dataset {
			return versions[i].Dataset < versions[j].Dataset
		}
		return versions[i].Number < versions[j].Number
	})

	return versions, nil
}

// Sample returns the key of the first listed object under the version prefix
// that is an actual data file: not a pseudo-directory and not an
// underscore-prefixed control file such as _SUCCESS or _metadata. Listing
// order is the provider's. Returns ErrEmptyDataset when nothing qualifies.
func (r *Resolver) Sample(ctx context.Context, bucket, versionPrefix string) (string, error) {
	keys, err := r.store.ListObjects(ctx, bucket, versionPrefix)
	if err != nil {
		return "", fmt.Errorf("listing %s: %w", versionPrefix, err)
	}

	for _, key := range keys {
		if eligibleSample(key) {
			return key, nil
		}
	}

	return "", fmt.Errorf("%s: %w", versionPrefix, ErrEmptyDataset)
}

// HasSuccessMarker reports whether the version prefix contains a _SUCCESS
// object, the convention for a completed job output directory.
func (r *Resolver) HasSuccessMarker(ctx context.Context, bucket, versionPrefix string) (bool, error) {
	keys, err := r.store.ListObjects(ctx, bucket, versionPrefix)
	if err != nil {
		return false, fmt.Errorf("listing %s: %w", versionPrefix, err)
	}

	for _, key := range keys {
		if basename(key) == "_SUCCESS" {
			return true, nil
		}
	}

	return false, nil
}

func eligibleSample(key string) bool {
	if strings.HasSuffix(key, "/") {
		return false
	}
	return !strings.HasPrefix(basename(key), "_")
}

func basename(key string) string {
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		return key[idx+1:]
	}
	return key
}
