package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mreid-moz/parquet2hive/config"
	"github.com/mreid-moz/parquet2hive/extract"
	"github.com/mreid-moz/parquet2hive/pipeline"
	"github.com/mreid-moz/parquet2hive/storage"
)

func main() {
	log.SetFlags(0)

	configFile := flag.String("config", "", "Path to optional config file")
	datasetVersion := flag.String("dataset-version", "", "Only emit this version, e.g. v3")
	useLastVersions := flag.Int("use-last-versions", 0, "Only emit the N most recent versions (0 = all)")
	successOnly := flag.Bool("success-only", false, "Only consider versions with a _SUCCESS marker")
	alias := flag.String("alias", "", "Override the dataset name used for table identifiers")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] s3://BUCKET/DATASET_PATH\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := &config.Config{}
	if *configFile != "" {
		loaded, err := config.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	ctx := context.Background()

	client, err := newS3Client(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create S3 client: %v", err)
	}

	var extractor extract.Extractor = extract.FooterExtractor{}
	if cfg.MetadataTool.Command != "" {
		extractor = &extract.ToolExtractor{
			Command: cfg.MetadataTool.Command,
			Args:    cfg.MetadataTool.Args,
		}
	}

	p := pipeline.New(storage.NewS3Store(client), extractor, os.Stdout, pipeline.Options{
		DatasetVersion:  *datasetVersion,
		UseLastVersions: *useLastVersions,
		SuccessOnly:     *successOnly,
		Alias:           *alias,
	})

	if err := p.Run(ctx, flag.Arg(0)); err != nil {
		log.Fatalf("Failed: %v", err)
	}
}

func newS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWS.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWS.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.AWS.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
