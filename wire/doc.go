/*
Package wire provides the byte level primitives every VDXF record is built on.

There are two integer encodings and they are never interchanged:

  - VarInt is the self terminating, MSB first, base 128 encoding used for
    versions, flags, types and counts inside records. Each continuation byte
    has 0x80 set, and the decoder adds one after every continuation so that
    each value has exactly one encoding.
  - CompactSize is the length prefix used for byte strings and element
    counts. The leading byte selects a 1, 3, 5 or 9 byte form.

	value           VarInt          CompactSize
	0               00              00
	127             7f              7f
	128             80 00           80
	253             80 7d           fd fd 00
	16383           fe 7f           fd ff 3f
	65535           82 fe 7f        fd ff ff
	4294967296      8e fe fe ff 00  ff 00 00 00 00 01 00 00 00

Writer and Reader are a paired cursor over a buffer with a tracked offset.
Writers are always pre-sized from an exact length computation, they never
grow. Readers either consume exactly the bytes of a value or fail and leave
the offset where it was.
*/
package wire
