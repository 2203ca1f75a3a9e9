/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package s3store keeps chesssystem's blobs in Amazon S3: the web cache
 * behind the USCF client (an httpcache.Cache) and uploaded reports. The
 * cache half descends from github.com/sourcegraph/s3cache, moved to
 * aws-sdk-go-v2.
 */
package s3store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// objectAPI is the subset of *s3.Client the store uses.
type objectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Store is one S3 bucket.
type Store struct {
	// Config is the Amazon S3 configuration loaded by Init.
	Config aws.Config

	// Client defaults to s3.NewFromConfig(Config) in Init; callers may
	// replace it before use.
	Client objectAPI

	bucketName string
	gzip       bool
	logger     zerolog.Logger
	ctx        context.Context
}

type Option func(*Store)

// WithGzip compresses cache entries; their object keys get a ".gz" suffix.
// Report objects are never compressed.
func WithGzip(gzip bool) Option {
	return func(s *Store) {
		s.gzip = gzip
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New returns a Store for bucket. Callers invoke Init before use unless they
// set Client themselves.
func New(ctx context.Context, bucket string, opts ...Option) *Store {
	s := &Store{
		ctx:        ctx,
		bucketName: bucket,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Bucket() string {
	return s.bucketName
}

// Init loads the default AWS configuration (environment, then shared config
// files) and checks that the bucket can be read and listed.
func (s *Store) Init() error {
	var err error
	s.Config, err = config.LoadDefaultConfig(s.ctx)
	if err != nil {
		return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(s.Config)
	s.Client = client

	if _, err = client.HeadBucket(s.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	}); err != nil {
		return fmt.Errorf("s3store.init: head bucket failed for %s: %w",
			s.bucketName, err)
	}

	if _, err = client.ListObjectsV2(s.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucketName),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3store.init: list objects failed for %s: %w",
			s.bucketName, err)
	}

	return nil
}
