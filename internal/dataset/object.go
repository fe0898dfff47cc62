package dataset

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"

	"carmarket/internal/domain"
)

// ObjectSource reads the dataset from an S3-compatible bucket.
type ObjectSource struct {
	Client *minio.Client
	Bucket string
	Key    string
}

func (s *ObjectSource) Load(ctx context.Context) ([]domain.Listing, error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, s.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	defer obj.Close()
	listings, err := Decode(obj)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	return listings, nil
}
