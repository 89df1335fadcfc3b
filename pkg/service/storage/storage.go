// Package storage writes exports to their destinations: a local file,
// stdout ("-") or a Google Cloud Storage object ("gs://bucket/object").
package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
)

const gcsScheme = "gs://"

// Opener writes exports to their destinations
type Opener struct {
	stdout      io.Writer
	gcsEndpoint string
}

// Option configures Opener
type Option func(*Opener)

// WithStdout sets the writer used for the "-" destination
func WithStdout(w io.Writer) Option {
	return func(o *Opener) {
		o.stdout = w
	}
}

// WithGCSEndpoint points GCS writes at an alternative endpoint such as a
// local emulator. Authentication is disabled in that case.
func WithGCSEndpoint(endpoint string) Option {
	return func(o *Opener) {
		o.gcsEndpoint = endpoint
	}
}

// NewOpener creates an Opener
func NewOpener(opts ...Option) *Opener {
	o := &Opener{stdout: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Put writes data to dest in one step. A local file is replaced by
// rename, so an existing file is either kept or fully replaced. A GCS
// object is created only when the whole upload succeeds.
func (o *Opener) Put(ctx context.Context, dest string, data []byte) error {
	switch {
	case dest == "" || dest == "-":
		if _, err := o.stdout.Write(data); err != nil {
			return goerr.Wrap(err, "failed to write export to stdout")
		}
		return nil

	case strings.HasPrefix(dest, gcsScheme):
		bucket, object, err := parseGCSURL(dest)
		if err != nil {
			return err
		}
		return o.putGCS(ctx, bucket, object, data)

	default:
		return putFile(filepath.Clean(dest), data)
	}
}

func putFile(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create export directory", goerr.V("dir", dir))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*")
	if err != nil {
		return goerr.Wrap(err, "failed to create export file", goerr.V("path", dest))
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return goerr.Wrap(err, "failed to write export file", goerr.V("path", dest))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to write export file", goerr.V("path", dest))
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return goerr.Wrap(err, "failed to set export file mode", goerr.V("path", dest))
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return goerr.Wrap(err, "failed to replace export file", goerr.V("path", dest))
	}
	return nil
}

func (o *Opener) putGCS(ctx context.Context, bucket, object string, data []byte) error {
	var opts []option.ClientOption
	if o.gcsEndpoint != "" {
		opts = append(opts, option.WithEndpoint(o.gcsEndpoint), option.WithoutAuthentication())
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return goerr.Wrap(err, "failed to create GCS client", goerr.V("bucket", bucket))
	}
	defer client.Close() //nolint:errcheck // the upload error is what matters

	// cancelling the writer context aborts the upload without creating the object
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := client.Bucket(bucket).Object(object).NewWriter(ctx)
	if strings.HasSuffix(object, ".csv") {
		w.ContentType = "text/csv"
	}
	if _, err := w.Write(data); err != nil {
		cancel()
		_ = w.Close()
		return goerr.Wrap(err, "failed to upload export to GCS",
			goerr.V("bucket", bucket), goerr.V("object", object))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to upload export to GCS",
			goerr.V("bucket", bucket), goerr.V("object", object))
	}
	return nil
}

func parseGCSURL(dest string) (bucket, object string, err error) {
	rest := strings.TrimPrefix(dest, gcsScheme)
	bucket, object, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" || strings.HasSuffix(object, "/") {
		return "", "", goerr.New("GCS destination must be gs://bucket/object", goerr.V("dest", dest))
	}
	return bucket, object, nil
}
