// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import "errors"

var (
	// ErrHashMismatch is returned by Load when the artifact's computed
	// BLAKE3 digest does not match the pinned expected digest. Fatal at
	// startup.
	ErrHashMismatch = errors.New("model: artifact hash does not match pinned digest")
	// ErrStructureInvalid is returned by Load (after a successful hash
	// check) when the parsed ensemble fails structural validation.
	ErrStructureInvalid = errors.New("model: ensemble structure invalid")
	// ErrFeatureVectorLength is returned by Predict when the supplied
	// feature vector length does not equal the model's declared feature
	// count.
	ErrFeatureVectorLength = errors.New("model: feature vector length mismatch")
)
