package services

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ResumeSource lists and loads a batch of résumés for offline screening. A
// file that cannot be read comes back as a rejected entry so the rest of the
// batch still runs; only a failure to list the source is returned as an
// error.
type ResumeSource interface {
	Load(ctx context.Context) ([]*UploadedFile, error)
}

type directorySource struct {
	dir         string
	maxFileSize int64
}

func NewDirectorySource(dir string, maxFileSize int64) ResumeSource {
	return &directorySource{dir: dir, maxFileSize: maxFileSize}
}

// Load returns every supported file directly under the directory, sorted by
// name.
func (s *directorySource) Load(ctx context.Context) ([]*UploadedFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", s.dir, err)
	}

	var files []*UploadedFile
	for _, entry := range entries {
		if entry.IsDir() || !IsSupportedFile(entry.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := s.read(entry.Name())
		if err != nil {
			files = append(files, RejectedFile(entry.Name(), err))
			continue
		}

		files = append(files, &UploadedFile{FileName: entry.Name(), Data: data})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].FileName < files[j].FileName })
	return files, nil
}

func (s *directorySource) read(name string) ([]byte, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	return ReadAll(f, s.maxFileSize)
}

type s3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3Source struct {
	client      s3API
	bucket      string
	prefix      string
	maxFileSize int64
}

// NewS3Source reads résumés from an S3-compatible bucket. A non-empty
// endpoint targets R2, MinIO or similar with path-style addressing.
func NewS3Source(awsCfg aws.Config, endpoint, bucket, prefix string, maxFileSize int64) ResumeSource {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Source(client, bucket, prefix, maxFileSize)
}

type s3Object struct {
	key  string
	size int64
}

func newS3Source(client s3API, bucket, prefix string, maxFileSize int64) *s3Source {
	return &s3Source{client: client, bucket: bucket, prefix: prefix, maxFileSize: maxFileSize}
}

// Load returns every supported object under the prefix in key order.
func (s *s3Source) Load(ctx context.Context) ([]*UploadedFile, error) {
	var objects []s3Object

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") || !IsSupportedFile(key) {
				continue
			}
			objects = append(objects, s3Object{key: key, size: aws.ToInt64(obj.Size)})
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].key < objects[j].key })

	files := make([]*UploadedFile, 0, len(objects))
	for _, obj := range objects {
		name := path.Base(obj.key)
		if obj.size > s.maxFileSize {
			files = append(files, RejectedFile(name, &InputError{
				Msg: fmt.Sprintf("object %s too large. Max size: %d bytes", obj.key, s.maxFileSize),
			}))
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := s.download(ctx, obj.key)
		if err != nil {
			files = append(files, RejectedFile(name, err))
			continue
		}
		files = append(files, &UploadedFile{FileName: name, Data: data})
	}

	return files, nil
}

func (s *s3Source) download(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := ReadAll(out.Body, s.maxFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}
