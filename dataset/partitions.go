package dataset

import "strings"

// InferPartitions collects partition column names from the k=v path segments
// between the dataset root prefix and the sample object's filename, in path
// order. Partition values are not inspected; partition columns are always
// string-typed in the emitted DDL.
func InferPartitions(sampleKey, rootPrefix string) []string {
	rel := strings.TrimPrefix(sampleKey, strings.TrimSuffix(rootPrefix, "/")+"/")

	segments := strings.Split(rel, "/")
	if len(segments) > 0 {
		segments = segments[:len(segments)-1] // drop the filename
	}

	var partitions []string
	for _, seg := range segments {
		if field, _, ok := strings.Cut(seg, "="); ok && field != "" {
			partitions = append(partitions, field)
		}
	}

	return partitions
}
