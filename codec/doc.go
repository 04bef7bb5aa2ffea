/*
Package codec provides big-endian primitive reads and writes over a byte
sink and a byte source.

# Overview

Writer serializes bool, signed/unsigned 8/16/32/64-bit integers,
length-prefixed UTF-8 strings, and raw byte runs onto any io.Writer.
Reader is the dual: it reads the same primitives back off either a
complete in-memory buffer or a stream that yields chunks asynchronously,
through the same set of Read* methods.

codec has no flow control of its own and imports neither creditstream nor
cipher; the pipeline tests stack it on top of both.
*/
package codec
