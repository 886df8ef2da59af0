package dataset

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/chrisdamba/bitesdash/internal/repositories"
	"github.com/chrisdamba/bitesdash/internal/repositories/postgres"
	"golang.org/x/sync/errgroup"
)

// LocalSource reads the six CSV files from a directory on disk.
type LocalSource struct {
	Dir string
}

func NewLocalSource(dir string) *LocalSource {
	if dir == "" {
		dir = "."
	}
	return &LocalSource{Dir: dir}
}

func (s *LocalSource) Load(ctx context.Context) (*Tables, error) {
	return loadTables(ctx, func(_ context.Context, name string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(s.Dir, name))
	})
}

// ObjectGetter is the subset of the S3 client the loader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the six CSV files from s3://Bucket/Prefix/.
type S3Source struct {
	client ObjectGetter
	bucket string
	prefix string
}

func NewS3Source(ctx context.Context, cfg models.S3Config) (*S3Source, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 source requires a bucket")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3SourceWithClient(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Prefix), nil
}

func NewS3SourceWithClient(client ObjectGetter, bucket, prefix string) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Source) Load(ctx context.Context) (*Tables, error) {
	return loadTables(ctx, func(ctx context.Context, name string) (io.ReadCloser, error) {
		key := path.Join(s.prefix, name)
		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, fmt.Errorf("s3://%s/%s: %w", s.bucket, key, err)
		}
		return out.Body, nil
	})
}

// PostgresSource reads the six tables through the repository layer.
type PostgresSource struct {
	repos *repositories.Repositories
}

func NewPostgresSource(repos *repositories.Repositories) *PostgresSource {
	return &PostgresSource{repos: repos}
}

func (s *PostgresSource) Load(ctx context.Context) (*Tables, error) {
	var t Tables
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		t.Customers, err = s.repos.Customers.GetAll(ctx)
		return wrapLoad("customers", err)
	})
	g.Go(func() (err error) {
		t.Restaurants, err = s.repos.Restaurants.GetAll(ctx)
		return wrapLoad("restaurants", err)
	})
	g.Go(func() (err error) {
		t.Orders, err = s.repos.Orders.GetAll(ctx)
		return wrapLoad("orders", err)
	})
	g.Go(func() (err error) {
		t.OrderItems, err = s.repos.OrderItems.GetAll(ctx)
		return wrapLoad("order items", err)
	})
	g.Go(func() (err error) {
		t.DeliveryEvents, err = s.repos.DeliveryEvents.GetAll(ctx)
		return wrapLoad("delivery events", err)
	})
	g.Go(func() (err error) {
		t.Riders, err = s.repos.Riders.GetAll(ctx)
		return wrapLoad("riders", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &t, nil
}

func wrapLoad(table string, err error) error {
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", table, err)
	}
	return nil
}

// NewSource builds the source named by cfg.Source. The returned cleanup
// function releases any connections and is never nil.
func NewSource(ctx context.Context, cfg *models.Config) (Source, func(), error) {
	noop := func() {}
	switch cfg.Source {
	case "", models.SourceLocal:
		log.Printf("Loading dataset from directory %s", cfg.DataDir)
		return NewLocalSource(cfg.DataDir), noop, nil
	case models.SourceS3:
		log.Printf("Loading dataset from s3://%s/%s", cfg.S3.Bucket, cfg.S3.Prefix)
		src, err := NewS3Source(ctx, cfg.S3)
		if err != nil {
			return nil, noop, err
		}
		return src, noop, nil
	case models.SourcePostgres:
		log.Printf("Loading dataset from postgres")
		pool, err := postgres.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, noop, err
		}
		return NewPostgresSource(postgres.NewRepositories(pool)), pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}
