package fsxs3

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/Abraxas-365/cvrelay/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3FileSystem(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{objects: map[string][]byte{}}
	sfs := NewS3FileSystem(client, "bucket", "/documents/")

	require.NoError(t, sfs.WriteFile(ctx, `cv\CV_Ana.pdf`, []byte("pdf")))
	assert.Contains(t, client.objects, "documents/cv/CV_Ana.pdf")

	ok, err := sfs.Exists(ctx, "/cv/CV_Ana.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := sfs.ReadFile(ctx, "cv/CV_Ana.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(data))

	require.NoError(t, sfs.DeleteFile(ctx, "cv/CV_Ana.pdf"))

	ok, err = sfs.Exists(ctx, "cv/CV_Ana.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = sfs.ReadFile(ctx, "cv/CV_Ana.pdf")
	assert.True(t, fsx.IsNotFound(err))

	assert.Equal(t, "cv/CV_Ana.pdf", sfs.Join("cv", "CV_Ana.pdf"))
}
