package s3

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"wfl-bus-finder-api-server/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestArchiveBuses(t *testing.T) {
	fake := &fakePutter{}
	u := &Uploader{
		Client: fake, Bucket: "bus-archive", Region: "us-west-2", Prefix: "snapshots/",
		now: func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}

	url, err := u.ArchiveBuses(context.Background(), "delete-all", []models.Bus{{BusNumber: "1", MainStreet: "Folsom Street"}})
	require.NoError(t, err)
	assert.Equal(t, "https://bus-archive.s3.us-west-2.amazonaws.com/snapshots/buses-20260102T030405Z.json", url)
	assert.Equal(t, "snapshots/buses-20260102T030405Z.json", *fake.input.Key)
	assert.Equal(t, "application/json", *fake.input.ContentType)

	var got snapshot
	require.NoError(t, json.Unmarshal(fake.body, &got))
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, "delete-all", got.Reason)
	assert.Equal(t, "Folsom Street", got.Buses[0].MainStreet)
}

func TestArchiveBusesUploadError(t *testing.T) {
	u := &Uploader{Client: &fakePutter{err: errors.New("access denied")}, Bucket: "b"}
	_, err := u.ArchiveBuses(context.Background(), "delete-all", nil)
	assert.ErrorContains(t, err, "access denied")
}
