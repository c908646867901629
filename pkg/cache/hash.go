package cache

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds "prefix:sha256(json(parts))".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash fingerprints a problem file or any other input by its bytes.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashRecords fingerprints coordinate records. Blank lines, line endings and
// surrounding whitespace do not change the result, so an edited file that
// describes the same grid keeps its checkpoints. Empty input hashes to "",
// meaning the run seeds from centroids.
func HashRecords(data []byte) string {
	h := sha256.New()
	sc := bufio.NewScanner(bytes.NewReader(data))
	empty := true
	for sc.Scan() {
		line := bytes.Join(bytes.Fields(sc.Bytes()), []byte(" "))
		if len(line) == 0 {
			continue
		}
		empty = false
		h.Write(line)
		h.Write([]byte{'\n'})
	}
	if empty {
		return ""
	}
	return hex.EncodeToString(h.Sum(nil))
}
