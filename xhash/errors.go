// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xhash

import "errors"

// ErrBadDigestLength is returned by DigestFromHex when the decoded byte
// length is not exactly Size.
var ErrBadDigestLength = errors.New("xhash: decoded digest is not 32 bytes")
