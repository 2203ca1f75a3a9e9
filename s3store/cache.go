/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/gregjones/httpcache"
)

const cachePrefix = "webcache"

// Cache is the httpcache.Cache view of a Store.
type Cache struct {
	*Store
}

var _ httpcache.Cache = Cache{}

func (s *Store) Cache() Cache {
	return Cache{s}
}

func (c Cache) Get(key string) ([]byte, bool) {
	objKey := c.cacheKeyToObjectKey(key)
	resp, err := c.Client.GetObject(c.ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil {
		var apiErr smithy.APIError
		// no such key is just a miss
		if !(errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey") {
			c.logger.Warn().Err(err).Str("bucket", c.bucketName).
				Str("key", objKey).Msg("s3store.get: failed to get object")
		}
		return nil, false
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if c.gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			c.logger.Warn().Err(err).Str("key", objKey).
				Msg("s3store.get: failed to open compressed object")
			return nil, false
		}
		defer rdr.Close()
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", objKey).
			Msg("s3store.get: failed to read object")
		return nil, false
	}

	return data, true
}

func (c Cache) Set(key string, data []byte) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.cacheKeyToObjectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if c.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		_, err := gw.Write(data)
		if err == nil {
			err = gw.Close()
		}
		if err != nil {
			c.logger.Warn().Err(err).Str("key", *input.Key).
				Msg("s3store.set: failed to compress entry")
			return
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		c.logger.Warn().Err(err).Str("key", *input.Key).
			Msg("s3store.set: put failed")
	}
}

func (c Cache) Delete(key string) {
	objKey := c.cacheKeyToObjectKey(key)
	_, err := c.Client.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("key", objKey).
			Msg("s3store.delete: delete failed")
	}
}

func (c Cache) cacheKeyToObjectKey(key string) string {
	sum := md5.Sum([]byte(key))
	objKey := cachePrefix + "/" + hex.EncodeToString(sum[:])
	if c.gzip {
		objKey += ".gz"
	}
	return objKey
}
