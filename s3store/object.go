/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package s3store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrBadURL = errors.New("s3store: expected s3://bucket/key")

// Object is a report destination in the store's bucket. Writes are buffered
// and uploaded in one PutObject when the writer is closed.
type Object struct {
	Store *Store
	Key   string
}

func (s *Store) Object(key string) Object {
	return Object{Store: s, Key: key}
}

func (o Object) Create() (io.WriteCloser, error) {
	if o.Store == nil || o.Store.Client == nil {
		return nil, fmt.Errorf("s3store: object %q has no client", o.Key)
	}
	if o.Key == "" {
		return nil, fmt.Errorf("s3store: empty object key")
	}
	return &objectWriter{obj: o}, nil
}

func (o Object) String() string {
	return fmt.Sprintf("s3://%s/%s", o.Store.bucketName, o.Key)
}

type objectWriter struct {
	obj    Object
	buf    bytes.Buffer
	closed bool
}

func (w *objectWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("s3store: write to closed object %v", w.obj)
	}
	return w.buf.Write(p)
}

func (w *objectWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	s := w.obj.Store
	_, err := s.Client.PutObject(s.ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(w.obj.Key),
		Body:        bytes.NewReader(w.buf.Bytes()),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("s3store: put %v failed: %w", w.obj, err)
	}

	s.logger.Debug().Str("object", w.obj.String()).Int("bytes", w.buf.Len()).
		Msg("report uploaded")
	return nil
}

// ParseURL splits "s3://bucket/key/with/slashes" into bucket and key.
func ParseURL(url string) (bucket string, key string, err error) {
	rest, ok := strings.CutPrefix(url, "s3://")
	if !ok {
		return "", "", ErrBadURL
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", ErrBadURL
	}
	return bucket, key, nil
}
