/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mikeb26/chesssystem/chess"
	"github.com/mikeb26/chesssystem/s3store"
)

// OpenDestination maps a report target to a chess.Destination. "-" is
// stdout, "s3://bucket/key" an object uploaded on close, and anything else a
// local file path.
func OpenDestination(ctx context.Context, target string, stdout io.Writer,
	logger zerolog.Logger) (chess.Destination, error) {

	switch {
	case target == "":
		return nil, fmt.Errorf("empty report destination")
	case target == "-":
		return chess.Writer{W: stdout}, nil
	case strings.HasPrefix(target, "s3://"):
		bucket, key, err := s3store.ParseURL(target)
		if err != nil {
			return nil, err
		}
		store := s3store.New(ctx, bucket, s3store.WithLogger(logger))
		if err := store.Init(); err != nil {
			return nil, fmt.Errorf("unable to open %v: %w", target, err)
		}
		return store.Object(key), nil
	default:
		return chess.FilePath(target), nil
	}
}
