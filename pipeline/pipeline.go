// Package pipeline sequences the whole import-statement run: resolve the
// versions of a dataset root, sample and download one file per version,
// extract and translate its schema, infer partition columns, and print one
// DDL block per version (plus the latest-version alias) to the output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mreid-moz/parquet2hive/dataset"
	"github.com/mreid-moz/parquet2hive/ddl"
	"github.com/mreid-moz/parquet2hive/extract"
	"github.com/mreid-moz/parquet2hive/schema"
	"github.com/mreid-moz/parquet2hive/storage"
)

type Options struct {
	// DatasetVersion restricts the run to one version, e.g. "v3".
	DatasetVersion string
	// UseLastVersions keeps only the N highest versions; 0 keeps all.
	UseLastVersions int
	// SuccessOnly skips versions without a _SUCCESS marker object.
	SuccessOnly bool
	// Alias overrides the dataset name used for table identifiers.
	Alias string
}

type Pipeline struct {
	store     storage.Store
	resolver  *dataset.Resolver
	extractor extract.Extractor
	out       io.Writer
	opts      Options
}

func New(store storage.Store, extractor extract.Extractor, out io.Writer, opts Options) *Pipeline {
	return &Pipeline{
		store:     store,
		resolver:  dataset.NewResolver(store),
		extractor: extractor,
		out:       out,
		opts:      opts,
	}
}

// Run emits DDL for every resolved version of the dataset root, in ascending
// version order. Failures local to one version are logged and skipped; only
// a malformed root or a failure to list it at all aborts the run.
func (p *Pipeline) Run(ctx context.Context, root string) error {
	loc, err := dataset.ParseLocation(root)
	if err != nil {
		return err
	}

	versions, err := p.resolver.Resolve(ctx, loc.Bucket, loc.Prefix)
	if err != nil {
		return err
	}

	versions = selectVersions(versions, p.opts)
	if len(versions) == 0 {
		log.Printf("nothing to emit for %s", loc)
		return nil
	}

	latest := versions[len(versions)-1].Number

	for _, v := range versions {
		if err := p.emitVersion(ctx, loc, v, v.Number == latest); err != nil {
			log.Printf("skipping %s: %v", v.Prefix, err)
		}
	}

	return nil
}

// selectVersions applies the version filters. Input is sorted ascending by
// version number and output preserves that order.
func selectVersions(versions []dataset.Version, opts Options) []dataset.Version {
	if opts.DatasetVersion != "" {
		var kept []dataset.Version
		for _, v := range versions {
			if fmt.Sprintf("v%d", v.Number) == opts.DatasetVersion {
				kept = append(kept, v)
			}
		}
		if len(kept) == 0 {
			log.Printf("version %s not found", opts.DatasetVersion)
		}
		versions = kept
	}

	if opts.UseLastVersions > 0 && len(versions) > opts.UseLastVersions {
		versions = versions[len(versions)-opts.UseLastVersions:]
	}

	return versions
}

func (p *Pipeline) emitVersion(ctx context.Context, loc dataset.Location, v dataset.Version, isLatest bool) error {
	if p.opts.SuccessOnly {
		ok, err := p.resolver.HasSuccessMarker(ctx, loc.Bucket, v.Prefix)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("no _SUCCESS marker")
		}
	}

	sample, err := p.resolver.Sample(ctx, loc.Bucket, v.Prefix)
	if err != nil {
		return err
	}

	local := filepath.Join(os.TempDir(), "parquet2hive-"+uuid.New().String())
	defer os.Remove(local)

	if err := p.store.Download(ctx, loc.Bucket, sample, local); err != nil {
		return fmt.Errorf("downloading %s: %w", sample, err)
	}

	raw, err := p.extractor.Extract(ctx, local)
	if err != nil {
		return fmt.Errorf("extracting schema from %s: %w", sample, err)
	}

	fields, err := schema.ParseDocument(raw)
	if err != nil {
		return fmt.Errorf("parsing schema of %s: %w", sample, err)
	}

	translator := schema.NewTranslator()
	columns := make([]ddl.Column, 0, len(fields))
	for _, field := range fields {
		hive, err := translator.Translate(field.Type)
		if err != nil {
			return fmt.Errorf("translating field %s: %w", field.Name, err)
		}
		columns = append(columns, ddl.Column{Name: field.Name, Type: hive})
	}

	partitions := dataset.InferPartitions(sample, loc.Prefix)

	name := v.Dataset
	if p.opts.Alias != "" {
		name = p.opts.Alias
	}

	location := "s3://" + loc.Bucket + "/" + strings.TrimSuffix(v.Prefix, "/")
	blocks, err := ddl.Render(name, v.Number, location, partitions, columns, isLatest)
	if err != nil {
		return err
	}

	for _, block := range blocks {
		fmt.Fprintln(p.out, block)
	}

	return nil
}
