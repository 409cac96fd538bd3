package exfatdirent

import "encoding/binary"

// binaryOrder is the byte order every exFAT on-disk structure uses.
var binaryOrder = binary.LittleEndian
