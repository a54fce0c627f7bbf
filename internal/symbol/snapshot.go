package symbol

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ msgpack.CustomEncoder = (*Interner)(nil)
	_ msgpack.CustomDecoder = (*Interner)(nil)
)

// EncodeMsgpack writes the table in Symbol order, without the Empty entry.
func (in *Interner) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(len(in.table) - 1); err != nil {
		return err
	}
	for _, s := range in.table[1:] {
		if err := enc.EncodeString(s); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack resets the interner and re-interns a table written by
// EncodeMsgpack, so decoded Symbols equal the encoded ones.
func (in *Interner) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if in.index == nil {
		*in = *NewInterner()
	} else {
		in.Reset()
	}
	for i := range max(n, 0) {
		s, err := dec.DecodeString()
		if err != nil {
			return err
		}
		if sym := in.Intern(s); int(sym) != i+1 {
			return fmt.Errorf("symbol table snapshot: duplicate entry %q at %d", s, i+1)
		}
	}
	return nil
}
