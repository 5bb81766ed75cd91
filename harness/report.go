// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package harness

import (
	"fmt"
	"os"

	"github.com/ippan/dlc/model"
	"github.com/ippan/dlc/selection"
	"github.com/ippan/dlc/xhash"
)

// Report is the combined outcome of a full harness run: the pinned-model
// golden-digest check and the deterministic verifier-selection check.
type Report struct {
	Model     ModelDigestReport
	Selection selection.Result
	Pass      bool
}

// Run loads the model artifact at modelPath, verifies its content against
// artifactDigest (the pinned hash of the artifact's own bytes), evaluates it
// over the golden feature vectors, and checks the resulting score digest
// against expectedScoreDigest (a digest recorded once from a known-good
// evaluation, independent of the artifact's own content hash). It also
// replays scenario and compares it against expectedSelection. Pass is true
// only when both the score digest and the selection scenario agree.
func Run(
	modelPath string,
	enc model.Encoding,
	artifactDigest xhash.Digest,
	expectedScoreDigest xhash.Digest,
	scenario SelectionScenario,
	expectedSelection selection.Result,
) (Report, error) {
	raw, err := os.ReadFile(modelPath)
	if err != nil {
		return Report{}, fmt.Errorf("harness: reading model artifact: %w", err)
	}

	e, err := model.Load(raw, enc, artifactDigest)
	if err != nil {
		return Report{}, fmt.Errorf("harness: loading model artifact: %w", err)
	}

	modelReport, err := CheckModelDigest(e, expectedScoreDigest)
	if err != nil {
		return Report{}, err
	}

	selResult, selOK, err := CheckSelectionScenario(scenario, expectedSelection)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Model:     modelReport,
		Selection: selResult,
		Pass:      modelReport.OK() && selOK,
	}, nil
}
