/*

Package lotus implements a tiered variable-length encoding of unsigned integers.

A value is stored as a payload whose width grows with its magnitude. The width
is itself encoded with the same scheme, a fixed number of times (the tiers),
and the width of the topmost tier is stored in a small fixed-width header, the
jumpstarter field. Config selects the jumpstarter width and the tier count,
trading header cost for the largest representable magnitude.

Bucketing

For m = v+1, width w covers the bucket [2^w-2, 2^(w+1)-3] and the payload is
the offset of m within its bucket, so bucket sizes double with each width:

    w  bucket (m)   values v
    1  0 ..   1     0
    2  2 ..   5     1 .. 4
    3  6 ..  13     5 .. 12
    4  14 .. 29     13 .. 28

Bit layout

Fields are written highest bits first and concatenated in order, the last
byte is padded with zeros:

    [ jumpstarter ][ tier T ] ... [ tier 1 ][ payload ]

For example 42 under J2D1 (jumpstarter 2 bits, 1 tier) has m = 43 in bucket 5
with payload 13, and width 5 has m = 6 in bucket 3 with payload 0:

    jumpstarter  tier 1  payload
    10           000     01101     => 0x83 0x40 (10 bits)

Decode reports the number of bits it consumed and never reads past them, so
callers can frame consecutive values themselves. Writer and Reader, the bit
I/O used by the codec, are exported for that purpose.

EncodeBig and DecodeBig apply the same scheme to magnitudes of any size.

*/
package lotus
