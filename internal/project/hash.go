package project

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine builds a derived key: H( content || dep1 || dep2 ... ).
// Order of deps matters; callers pass them in a fixed order.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Hex is the lowercase hex form, used as a cache file name.
func (d Digest) Hex() string { return hex.EncodeToString(d[:]) }

// OptionsDigest hashes the settings that change rendered output, so a
// cache entry is never reused across incompatible settings.
func (c Config) OptionsDigest() Digest {
	return sha256.Sum256(fmt.Appendf(nil, "format=%s;max_errors=%d", c.Dump.Format, c.Check.MaxErrors))
}
