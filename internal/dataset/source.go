package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"carmarket/internal/config"
	"carmarket/internal/domain"
	"carmarket/internal/repos"
)

// Source yields the full listings collection. Implementations re-read the
// underlying resource on every call.
type Source interface {
	Load(ctx context.Context) ([]domain.Listing, error)
}

// ErrEmptyLocation is returned by Open when no dataset location is configured.
var ErrEmptyLocation = errors.New("dataset location is empty")

// Open picks a Source for cfg.Dataset:
//
//	http://... or https://...  HTTPSource
//	s3://bucket/key            ObjectSource (MinIO/S3 credentials from cfg)
//	sqlite:path                SQLite mirror written by cmd/importlistings
//	anything else              FileSource
func Open(cfg config.Config) (Source, error) {
	loc := strings.TrimSpace(cfg.Dataset)
	switch {
	case loc == "":
		return nil, ErrEmptyLocation
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return NewHTTPSource(loc, cfg.FetchTimeout), nil
	case strings.HasPrefix(loc, "s3://"):
		return openObject(cfg, loc)
	case strings.HasPrefix(loc, "sqlite:"):
		db, err := repos.OpenDB(strings.TrimPrefix(loc, "sqlite:"))
		if err != nil {
			return nil, fmt.Errorf("open sqlite dataset: %w", err)
		}
		return repos.NewListingRepo(db), nil
	default:
		return FileSource{Path: loc}, nil
	}
}

func openObject(cfg config.Config, loc string) (Source, error) {
	u, err := url.Parse(loc)
	if err != nil {
		return nil, fmt.Errorf("parse dataset location: %w", err)
	}
	bucket, key := u.Host, strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("dataset location %q: want s3://bucket/key", loc)
	}
	if cfg.MinioEndpoint == "" {
		return nil, errors.New("s3 dataset requires MINIO_ENDPOINT")
	}
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return &ObjectSource{Client: client, Bucket: bucket, Key: key}, nil
}

// Decode parses a JSON array of listings. A JSON null decodes to an empty
// collection.
func Decode(r io.Reader) ([]domain.Listing, error) {
	var out []domain.Listing
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	if out == nil {
		out = []domain.Listing{}
	}
	return out, nil
}
