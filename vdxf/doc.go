/*
Package vdxf implements the Universal Value codec: a self describing binary
encoding in which every value is introduced by a 20 byte type key.

A key is the VDXF id of a well known name, "vrsc::data.type.string" for
example, and selects both the Go representation of the value and how it is
framed. Fixed width scalars are written as the key followed by their raw
little endian bytes. Everything else is written as

	key(20) | version(VarInt) | length(CompactSize) | payload

so a reader that does not know a key can still tell where its value ends.

Encoding is strict. Every entry must carry a catalogued key, a value of the
kind registered for it, and that value must be valid. Decoding is lenient.
When the decoder meets a key it does not know, or a value that parses but is
not valid, it stops and keeps every remaining byte as a final Opaque entry.
Re-encoding a decoded UniValue therefore reproduces its input exactly. Bytes
that do not parse under a known key are an error.

The records built on the codec, DataDescriptor and MMRDescriptor among them,
nest further Universal Values in their object data. An MMRDescriptor commits
to a list of DataDescriptors with a Merkle Mountain Range from package mmr.
*/
package vdxf
