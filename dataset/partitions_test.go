package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInferPartitions(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		prefix string
		want   []string
	}{
		{
			name:   "two partition levels",
			key:    "data/churn/v1/date=2020-01-01/sample=1/part-00000.parquet",
			prefix: "data/churn",
			want:   []string{"date", "sample"},
		},
		{
			name:   "version segment is not a partition",
			key:    "data/churn/v1/part-00000.parquet",
			prefix: "data/churn",
			want:   nil,
		},
		{
			name:   "filename with equals sign is ignored",
			key:    "data/churn/v1/date=2020/x=y.parquet",
			prefix: "data/churn",
			want:   []string{"date"},
		},
		{
			name:   "prefix with trailing slash",
			key:    "data/churn/v2/env=prod/part.parquet",
			prefix: "data/churn/",
			want:   []string{"env"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, InferPartitions(tt.key, tt.prefix))
		})
	}
}
