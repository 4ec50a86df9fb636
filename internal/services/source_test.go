package services

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectorySource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("bob"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("%PDF"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("skip"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	files, err := NewDirectorySource(dir, 1024).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "a.pdf", files[0].FileName)
	assert.Equal(t, "b.txt", files[1].FileName)
	assert.Equal(t, []byte("bob"), files[1].Data)
}

func TestDirectorySourceTooLargeKeepsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("aa"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), bytes.Repeat([]byte("x"), 100), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), []byte("cc"), 0o644))

	files, err := NewDirectorySource(dir, 10).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, files, 3)
	assert.Equal(t, []byte("aa"), files[0].Data)
	assert.NoError(t, files[0].Err)
	assert.Equal(t, "b.txt", files[1].FileName)
	var inputErr *InputError
	assert.ErrorAs(t, files[1].Err, &inputErr)
	assert.Equal(t, []byte("cc"), files[2].Data)
	assert.NoError(t, files[2].Err)
}

func TestDirectorySourceMissingDir(t *testing.T) {
	_, err := NewDirectorySource(filepath.Join(t.TempDir(), "missing"), 10).Load(context.Background())
	assert.Error(t, err)
}

type fakeS3 struct {
	objects map[string]string
	listed  *s3.ListObjectsV2Input
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.listed = params
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for key, body := range f.objects {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key), Size: aws.Int64(int64(len(body)))})
	}
	return out, nil
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body := f.objects[aws.ToString(params.Key)]
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte(body)))}, nil
}

func TestS3Source(t *testing.T) {
	client := &fakeS3{objects: map[string]string{
		"resumes/":          "",
		"resumes/zed.pdf":   "zed",
		"resumes/amy.docx":  "amy",
		"resumes/photo.png": "png",
	}}

	files, err := newS3Source(client, "cv-bucket", "resumes/", 1024).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "cv-bucket", aws.ToString(client.listed.Bucket))
	assert.Equal(t, "resumes/", aws.ToString(client.listed.Prefix))
	require.Len(t, files, 2)
	assert.Equal(t, "amy.docx", files[0].FileName)
	assert.Equal(t, "zed.pdf", files[1].FileName)
	assert.Equal(t, []byte("zed"), files[1].Data)
}

func TestS3SourceTooLargeKeepsOtherObjects(t *testing.T) {
	client := &fakeS3{objects: map[string]string{
		"cv/a.pdf":   "aa",
		"cv/big.pdf": "0123456789",
		"cv/c.txt":   "cc",
	}}

	files, err := newS3Source(client, "b", "cv/", 5).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, files, 3)
	assert.Equal(t, "a.pdf", files[0].FileName)
	assert.NoError(t, files[0].Err)
	assert.Equal(t, "big.pdf", files[1].FileName)
	var inputErr *InputError
	assert.ErrorAs(t, files[1].Err, &inputErr)
	assert.Nil(t, files[1].Data)
	assert.Equal(t, []byte("cc"), files[2].Data)
}
