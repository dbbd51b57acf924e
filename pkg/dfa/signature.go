package dfa

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/ianloic/llvm-fnmatch/pkg/fsm"
)

// Signature is a set of NFA state IDs, identifying one DFA state. Signatures
// are comparable with == and can be used as map keys.
type Signature struct {
	// IDs in ascending order, each packed as 4 big-endian bytes.
	key string
}

// NewSignature returns the Signature of the given IDs. Duplicates are
// ignored and order does not matter.
func NewSignature(ids ...fsm.StateID) Signature {
	var b bitset.BitSet
	for _, id := range ids {
		b.Set(uint(id))
	}
	return signatureOf(&b)
}

func signatureOf(b *bitset.BitSet) Signature {
	buf := make([]byte, 4*b.Count())
	n := 0
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		binary.BigEndian.PutUint32(buf[n:], uint32(i))
		n += 4
	}
	return Signature{string(buf)}
}

// IDs returns the IDs in the Signature, in ascending order.
func (s Signature) IDs() []fsm.StateID {
	ids := make([]fsm.StateID, len(s.key)/4)
	for i := range ids {
		ids[i] = fsm.StateID(binary.BigEndian.Uint32([]byte(s.key[4*i : 4*i+4])))
	}
	return ids
}

// Len returns the number of IDs in the Signature.
func (s Signature) Len() int { return len(s.key) / 4 }

// String returns the Signature in the form {0,2,3}.
func (s Signature) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, id := range s.IDs() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(id)))
	}
	sb.WriteByte('}')
	return sb.String()
}
