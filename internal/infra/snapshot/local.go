package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
)

const cidPrefix = "bafy"

// LocalCID derives a deterministic content identifier from the payload
// fingerprint and the attestation digest. The same (payload, attestation)
// pair always yields the same CID, which keeps ingestion results
// reproducible with zero external connectivity.
func LocalCID(contentHash, attestationDigest string) string {
	sum := sha256.Sum256([]byte(contentHash + ":" + attestationDigest))
	return cidPrefix + hex.EncodeToString(sum[:])[:56]
}
