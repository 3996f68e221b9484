// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashCredential digests a plain-text password before it is sent to the backend.
//
// The backend stores and compares this exact digest, so the function must stay
// deterministic: hex-encoded SHA-256 of the UTF-8 bytes.
func HashCredential(plainTextPassword string) string {
	sum := sha256.Sum256([]byte(plainTextPassword))
	return hex.EncodeToString(sum[:])
}
