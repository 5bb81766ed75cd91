// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package harness

// KnownModelDigestHex is the pinned BLAKE3 digest (hex) of the reference
// model artifact used by the S6 determinism scenario: the digest of the
// artifact's own bytes, as checked by model.Load. The harness command uses
// it as the default for --artifact-digest.
const KnownModelDigestHex = "ac5234082ce1de0c52ae29fab9a43e9c52c0ea184f24a1e830f12f2412c5cb0d"
