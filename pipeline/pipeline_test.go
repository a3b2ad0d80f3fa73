package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeStore serves canned listings; Download records the object key into the
// local file so the fake extractor can tell versions apart.
type fakeStore struct {
	children []string
	keys     []string
}

func (f *fakeStore) ListCommonPrefixes(ctx context.Context, bucket, prefix, delimiter string) ([]string, error) {
	var out []string
	for _, child := range f.children {
		if strings.HasPrefix(child, prefix) {
			out = append(out, child)
		}
	}
	return out, nil
}

func (f *fakeStore) ListObjects(ctx context.Context, bucket, prefix string) ([]string, error) {
	var out []string
	for _, key := range f.keys {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	return out, nil
}

func (f *fakeStore) Download(ctx context.Context, bucket, key, localPath string) error {
	return os.WriteFile(localPath, []byte(key), 0o644)
}

// keyExtractor maps the downloaded object key back to a canned raw schema.
type keyExtractor struct {
	schemas map[string]string // object key -> raw schema JSON
}

func (e *keyExtractor) Extract(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw, ok := e.schemas[string(data)]
	if !ok {
		return nil, fmt.Errorf("no schema for %s", data)
	}
	return []byte(raw), nil
}

const simpleSchema = `{"fields": [
	{"name": "client_id", "type": "string"},
	{"name": "count", "type": ["null", "long"]}
]}`

func churnFixture() (*fakeStore, *keyExtractor) {
	store := &fakeStore{
		children: []string{
			"data/churn/v1/",
			"data/churn/v2/",
			"data/churn/v3/",
		},
		keys: []string{
			"data/churn/v1/_SUCCESS",
			"data/churn/v1/date=2020-01-01/part-00000.parquet",
			"data/churn/v2/date=2020-02-01/part-00000.parquet",
			"data/churn/v3/_SUCCESS",
			"data/churn/v3/date=2020-03-01/part-00000.parquet",
		},
	}
	extractor := &keyExtractor{schemas: map[string]string{
		"data/churn/v1/date=2020-01-01/part-00000.parquet": simpleSchema,
		"data/churn/v2/date=2020-02-01/part-00000.parquet": simpleSchema,
		"data/churn/v3/date=2020-03-01/part-00000.parquet": simpleSchema,
	}}
	return store, extractor
}

func runPipeline(t *testing.T, store *fakeStore, extractor *keyExtractor, opts Options) []string {
	t.Helper()

	var out bytes.Buffer
	p := New(store, extractor, &out, opts)
	require.NoError(t, p.Run(context.Background(), "s3://telemetry/data/churn"))

	text := strings.TrimSpace(out.String())
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestRunEmitsAllVersionsAscendingWithAlias(t *testing.T) {
	store, extractor := churnFixture()
	lines := runPipeline(t, store, extractor, Options{})

	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "CREATE EXTERNAL TABLE churn_v1(")
	require.Contains(t, lines[1], "CREATE EXTERNAL TABLE churn_v2(")
	require.Contains(t, lines[2], "CREATE EXTERNAL TABLE churn_v3(")

	// The alias block comes last, uses the bare name, and points at the
	// latest version's physical path.
	require.Contains(t, lines[3], "CREATE EXTERNAL TABLE churn(")
	require.Contains(t, lines[3], "LOCATION 's3://telemetry/data/churn/v3'")

	// Translated columns and inferred partitions appear in every block.
	for _, line := range lines {
		require.Contains(t, line, "`client_id` string, `count` bigint")
		require.Contains(t, line, "PARTITIONED BY (`date` string)")
	}
}

func TestRunSkipsEmptyVersion(t *testing.T) {
	store, extractor := churnFixture()
	// v2 now holds only a control file.
	store.keys = []string{
		"data/churn/v1/date=2020-01-01/part-00000.parquet",
		"data/churn/v2/_SUCCESS",
		"data/churn/v3/date=2020-03-01/part-00000.parquet",
	}

	lines := runPipeline(t, store, extractor, Options{})

	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "churn_v1")
	require.Contains(t, lines[1], "churn_v3")
	require.Contains(t, lines[2], "CREATE EXTERNAL TABLE churn(")
}

func TestRunUseLastVersions(t *testing.T) {
	store, extractor := churnFixture()
	lines := runPipeline(t, store, extractor, Options{UseLastVersions: 1})

	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "churn_v3")
	require.Contains(t, lines[1], "CREATE EXTERNAL TABLE churn(")
}

func TestRunDatasetVersion(t *testing.T) {
	store, extractor := churnFixture()
	lines := runPipeline(t, store, extractor, Options{DatasetVersion: "v1"})

	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "churn_v1")
	require.Contains(t, lines[1], "LOCATION 's3://telemetry/data/churn/v1'")
}

func TestRunDatasetVersionAbsent(t *testing.T) {
	store, extractor := churnFixture()
	lines := runPipeline(t, store, extractor, Options{DatasetVersion: "v9"})
	require.Empty(t, lines)
}

func TestRunSuccessOnly(t *testing.T) {
	store, extractor := churnFixture()
	lines := runPipeline(t, store, extractor, Options{SuccessOnly: true})

	// Only v1 and v3 carry _SUCCESS; v2 is skipped.
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "churn_v1")
	require.Contains(t, lines[1], "churn_v3")
	require.Contains(t, lines[2], "CREATE EXTERNAL TABLE churn(")
}

func TestRunAliasOverridesTableName(t *testing.T) {
	store, extractor := churnFixture()
	lines := runPipeline(t, store, extractor, Options{Alias: "retention", UseLastVersions: 1})

	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "CREATE EXTERNAL TABLE retention_v3(")
	require.Contains(t, lines[1], "CREATE EXTERNAL TABLE retention(")
	require.Contains(t, lines[1], "LOCATION 's3://telemetry/data/churn/v3'")
}

func TestRunColumnPartitionCollisionSkipsVersion(t *testing.T) {
	store, extractor := churnFixture()
	collide := `{"fields": [
		{"name": "date", "type": "date"},
		{"name": "value", "type": "double"}
	]}`
	extractor.schemas["data/churn/v3/date=2020-03-01/part-00000.parquet"] = collide

	lines := runPipeline(t, store, extractor, Options{})

	// v3 collides (column "date" vs partition "date") and is skipped; its
	// alias block goes with it.
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "churn_v1")
	require.Contains(t, lines[1], "churn_v2")
}

func TestRunUntranslatableSchemaSkipsVersion(t *testing.T) {
	store, extractor := churnFixture()
	extractor.schemas["data/churn/v2/date=2020-02-01/part-00000.parquet"] =
		`{"fields": [{"name": "x", "type": "mystery_type"}]}`

	lines := runPipeline(t, store, extractor, Options{})

	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "churn_v1")
	require.Contains(t, lines[1], "churn_v3")
	require.Contains(t, lines[2], "CREATE EXTERNAL TABLE churn(")
}

func TestRunMalformedRootIsFatal(t *testing.T) {
	store, extractor := churnFixture()
	p := New(store, extractor, &bytes.Buffer{}, Options{})

	err := p.Run(context.Background(), "telemetry/data/churn")
	require.Error(t, err)
}

func TestRunNoVersionsIsNoop(t *testing.T) {
	store := &fakeStore{}
	extractor := &keyExtractor{}
	lines := runPipeline(t, store, extractor, Options{})
	require.Empty(t, lines)
}
