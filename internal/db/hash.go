package db

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// hashSeedToken 与 services.HashToken 保持同一套派生
// 放在这里避免 db 反向依赖 services
func hashSeedToken(token string) string {
	sum := sha3.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
