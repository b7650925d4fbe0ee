/* docstore_test.go
 * Contains unit tests for FileStore and S3Store. S3Store runs against an in memory S3API.
 */

package docstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bracket-bot/api/bracket"
)

type memoryS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryS3() *memoryS3 {
	return &memoryS3{objects: make(map[string][]byte)}
}

func (m *memoryS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *memoryS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (m *memoryS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := &s3.ListObjectsV2Output{}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

type failingS3 struct{ *memoryS3 }

func (failingS3) GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return nil, errors.New("connection reset")
}

func sample() *bracket.MatchupTree {
	return bracket.MustNew(
		bracket.MustNew(bracket.Team("Gonzaga"), bracket.Team("UCLA")),
		bracket.MustNew(bracket.Team("Baylor"), bracket.Team("Houston")),
	)
}

// exerciseStore runs the behaviour every Interface implementation must share
func exerciseStore(t *testing.T, store Interface) {
	ctx := context.Background()

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, store.Save(ctx, "sweet_sixteen", sample()))
	require.NoError(t, store.Save(ctx, "aar_1", sample()))

	loaded, err := store.Load(ctx, "sweet_sixteen")
	require.NoError(t, err)
	assert.True(t, sample().Equal(loaded))

	data, err := store.Read(ctx, "sweet_sixteen")
	require.NoError(t, err)
	expected, err := sample().ToDocument()
	require.NoError(t, err)
	assert.Equal(t, expected, data)

	_, err = store.Read(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"aar_1", "sweet_sixteen"}, names)

	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Load(ctx, "../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.ErrorIs(t, store.Save(ctx, ".hidden", sample()), ErrInvalidName)
}

// region FileStore tests

func TestFileStore(t *testing.T) {
	exerciseStore(t, NewFileStore(filepath.Join(t.TempDir(), "brackets")))
}

func TestFileStore_WritesTabIndentedDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewFileStore(dir).Save(context.Background(), "doc", sample()))

	data, err := os.ReadFile(filepath.Join(dir, "doc.xml"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<BracketTree>\n\t<depth_0"))
}

func TestFileStore_MalformedDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.xml"), []byte("<BracketTree></BracketTree>"), 0o644))

	_, err := NewFileStore(dir).Load(context.Background(), "bad")
	assert.ErrorIs(t, err, bracket.ErrMalformedDocument)
}

// endregion

// region S3Store tests

func TestS3Store(t *testing.T) {
	client := newMemoryS3()
	exerciseStore(t, &S3Store{Client: client, Bucket: "brackets", Prefix: "pool/"})

	assert.Contains(t, client.objects, "pool/sweet_sixteen.xml")
}

func TestS3Store_ListIgnoresOtherKeys(t *testing.T) {
	client := newMemoryS3()
	client.objects["pool/a.xml"] = []byte{}
	client.objects["pool/nested/b.xml"] = []byte{}
	client.objects["pool/readme.txt"] = []byte{}
	client.objects["other/c.xml"] = []byte{}

	names, err := (&S3Store{Client: client, Bucket: "brackets", Prefix: "pool/"}).List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, names)
}

func TestS3Store_TransportError(t *testing.T) {
	store := &S3Store{Client: &failingS3{newMemoryS3()}, Bucket: "brackets"}

	_, err := store.Load(context.Background(), "doc")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

// endregion
