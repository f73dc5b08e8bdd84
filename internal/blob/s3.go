package blob

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// DetailStore keeps the full provider payload for each title in S3, keyed
// by titleHash. Writes are blind overwrites: whichever provider was
// ingested last owns the blob.
type DetailStore struct {
	client *s3.Client
	bucket string
}

func NewDetailStore(cfg aws.Config, bucket string) *DetailStore {
	return &DetailStore{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
	}
}

func key(titleHash string) string { return titleHash + ".json" }

func (s *DetailStore) Put(ctx context.Context, titleHash string, payload []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key(titleHash)),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	return err
}

// Get returns the stored payload, or (nil, nil) when no blob exists for the
// hash.
func (s *DetailStore) Get(ctx context.Context, titleHash string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(titleHash)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}
