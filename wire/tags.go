// Package wire implements the MessagePack-inspired binary value codec:
// a tagged byte stream for nil/bool/int/float/string scalars and for
// the hybrid array+assoc table shape, plus the dead-key extension that
// lets a table re-emit Lua's garbage-collector tombstones.
package wire

// Byte-tag dispatch table (§4.4). Ranges are handled with comparisons
// in the codec; the named constants below are the single-value tags
// and the low bounds of each range.
const (
	tagPosFixIntMax = 0x7F // 0x00..=0x7F: positive fixint, value = byte
	tagNegFixIntMin = 0xE0 // 0xE0..=0xFF: negative fixint, value = int8(byte)

	tagHybridTableMin = 0x80 // 0x80..=0x8F: small hybrid table header
	tagHybridTableMax = 0x8F

	tagArrayTableMin = 0x90 // 0x90..=0x9F: pure-array table, len = low nibble
	tagArrayTableMax = 0x9F

	tagFixStrMin = 0xA0 // 0xA0..=0xBF: fixstr, len = low 5 bits
	tagFixStrMax = 0xBF

	tagNil      = 0xC0
	tagFalse    = 0xC2
	tagTrue     = 0xC3
	tagDeadKey  = 0xC5 // extension: dead-key marker in an assoc key position
	tagFloat64  = 0xCB
	tagUint8    = 0xCC
	tagUint16   = 0xCD
	tagUint32   = 0xCE
	tagInt8     = 0xD0
	tagInt16    = 0xD1
	tagInt32    = 0xD2
	tagStr8     = 0xD9
	tagStr16    = 0xDA
	tagArray16  = 0xDC // pure-array table, 2-byte LE length
	tagArray32  = 0xDD // pure-array table, 4-byte LE length (emitted for lengths above 0xFFFF)
	tagHybridEx = 0xDE // large hybrid table header
)

const fixStrMaxLen = 0x1F  // 31
const fixArrayMaxLen = 0xF // 15
