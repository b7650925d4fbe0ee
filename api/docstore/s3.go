/* s3.go
 * Contains the document store backed by an S3 bucket. Each document is stored under <prefix><name>.xml
 */

package docstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"bracket-bot/api/bracket"
)

// S3API is the subset of *s3.Client used by S3Store
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type S3Store struct {
	Client S3API
	Bucket string
	Prefix string
}

// NewS3Store returns a store using the default AWS configuration sources (environment variables, then shared
// configuration and credentials files)
func NewS3Store(ctx context.Context, bucket string, prefix string) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Store{Client: s3.NewFromConfig(cfg), Bucket: bucket, Prefix: prefix}, nil
}

func (s *S3Store) key(name string) string {
	return s.Prefix + name + extension
}

// Load fetches and parses a document, returning ErrNotFound if the key does not exist
func (s *S3Store) Load(ctx context.Context, name string) (*bracket.MatchupTree, error) {
	data, err := s.Read(ctx, name)
	if err != nil {
		return nil, err
	}
	return bracket.FromDocument(data)
}

// Read fetches a document's bytes
func (s *S3Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	resp, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound") {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", s.Bucket, s.key(name), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", s.Bucket, s.key(name), err)
	}
	return data, nil
}

func (s *S3Store) Save(ctx context.Context, name string, tree *bracket.MatchupTree) error {
	if err := checkName(name); err != nil {
		return err
	}
	data, err := tree.ToDocument()
	if err != nil {
		return err
	}

	_, err = s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(s.key(name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/xml"),
	})
	if err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", s.Bucket, s.key(name), err)
	}
	return nil
}

// List returns the names of every document under the prefix, sorted
func (s *S3Store) List(ctx context.Context) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(s.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.Bucket),
		Prefix: aws.String(s.Prefix),
	})

	var names []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s/%s: %w", s.Bucket, s.Prefix, err)
		}
		for _, obj := range page.Contents {
			key := strings.TrimPrefix(aws.ToString(obj.Key), s.Prefix)
			if strings.Contains(key, "/") || !strings.HasSuffix(key, extension) {
				continue
			}
			names = append(names, strings.TrimSuffix(key, extension))
		}
	}
	sort.Strings(names)
	return names, nil
}
