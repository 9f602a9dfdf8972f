package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/electoralqa/candidex/core"
)

// Key prefixes for the corpus artifact rows
const (
	documentPrefix   = "corpdoc"
	embeddingPrefix  = "corpemb"
	lexicalPrefix    = "corplex"
	sourceIDPrefix   = "corpsid"
	manifestKeyName  = "corpman"
	vectorizerKeyRaw = "corpviz"
)

// makePositionKey generates a row key for the given prefix and corpus
// position. Positions are written in BigEndian order so lexicographic
// iteration follows corpus order.
func makePositionKey(prefix string, pos int) []byte {
	p := prefix + ":"
	buf := make([]byte, len(p)+4)
	offset := copy(buf, p)
	binary.BigEndian.PutUint32(buf[offset:], uint32(pos))
	return buf
}

// makeSourceIDKey generates the uniqueness-index key for a document's hashed
// source ID.
func makeSourceIDKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", sourceIDPrefix, id))
}

func manifestKey() []byte {
	return []byte(manifestKeyName)
}

func vectorizerKey() []byte {
	return []byte(vectorizerKeyRaw)
}
