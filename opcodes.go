// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

// Per-header-version opcode format tables: opcode id -> parameter format
// string over the alphabet {S,s,f,o,t,n,N}. The 0xffff entry, where
// present, is the sentinel format for the end-of-script terminator and
// must match the decoder's sentinel check in script.go.
//
// v4pFormats serves both header versions 4 and 7; v8Formats serves header
// version 8 except where th18PatchFormats overrides it (see
// opcodes_lookup.go).

var v0Formats = map[uint16]string{
	0: "",
	1: "n",
	2: "ff",
	3: "S",
	4: "S",
	5: "o",
	6: "",
	7: "",
	8: "",
	9: "fff",
	10: "fff",
	11: "ff",
	12: "SS",
	13: "",
	14: "",
	15: "",
	16: "nS",
	17: "fff",
	18: "fffS",
	19: "fffS",
	20: "fffS",
	21: "",
	22: "S",
	23: "",
	24: "",
	25: "S",
	26: "S",
	27: "f",
	28: "f",
	29: "S",
	30: "ffS",
	31: "S",
}

var v2Formats = map[uint16]string{
	0: "",
	1: "",
	2: "",
	3: "n",
	4: "ot",
	5: "Sot",
	6: "fff",
	7: "ff",
	8: "S",
	9: "S",
	10: "",
	11: "",
	12: "fff",
	13: "fff",
	14: "ff",
	15: "SS",
	16: "S",
	17: "fffS",
	18: "fffS",
	19: "fffS",
	20: "",
	21: "S",
	22: "",
	23: "",
	24: "S",
	25: "S",
	26: "f",
	27: "f",
	28: "S",
	29: "ffS",
	30: "S",
	31: "S",
	32: "SSfff",
	33: "SSS",
	34: "SSS",
	35: "SSfff",
	36: "SSff",
	37: "SS",
	38: "ff",
	39: "SS",
	40: "ff",
	41: "SS",
	42: "ff",
	43: "SS",
	44: "ff",
	45: "SS",
	46: "ff",
	47: "SS",
	48: "ff",
	49: "SSS",
	50: "fff",
	51: "SSS",
	52: "fff",
	53: "SSS",
	54: "fff",
	55: "SSS",
	56: "fff",
	57: "SSS",
	58: "fff",
	59: "SS",
	60: "ff",
	61: "ff",
	62: "ff",
	63: "ff",
	64: "ff",
	65: "ff",
	66: "f",
	67: "SSot",
	68: "ffot",
	69: "SSot",
	70: "ffot",
	71: "SSot",
	72: "ffot",
	73: "SSot",
	74: "ffot",
	75: "SSot",
	76: "ffot",
	77: "SSot",
	78: "ffot",
	79: "S",
	80: "f",
	81: "f",
	65535: "",
}

var v3Formats = map[uint16]string{
	0: "",
	1: "",
	2: "",
	3: "n",
	4: "ot",
	5: "Sot",
	6: "fff",
	7: "ff",
	8: "S",
	9: "SSS",
	10: "",
	11: "",
	12: "fff",
	13: "fff",
	14: "ff",
	15: "SS",
	16: "S",
	17: "fffS",
	18: "fffS",
	19: "fffS",
	20: "",
	21: "S",
	22: "",
	23: "",
	24: "S",
	25: "S",
	26: "f",
	27: "f",
	28: "S",
	29: "ffS",
	30: "S",
	31: "S",
	32: "SSfff",
	33: "SSSSS",
	34: "SSS",
	35: "SSfff",
	36: "SSff",
	37: "SS",
	38: "ff",
	39: "SS",
	40: "ff",
	41: "SS",
	42: "ff",
	43: "SS",
	44: "ff",
	45: "SS",
	46: "ff",
	47: "SS",
	48: "ff",
	49: "SSS",
	50: "fff",
	51: "SSS",
	52: "fff",
	53: "SSS",
	54: "fff",
	55: "SSS",
	56: "fff",
	57: "SSS",
	58: "fff",
	59: "SS",
	60: "ff",
	61: "ff",
	62: "ff",
	63: "ff",
	64: "ff",
	65: "ff",
	66: "f",
	67: "SSot",
	68: "ffot",
	69: "SSot",
	70: "ffot",
	71: "SSot",
	72: "ffot",
	73: "SSot",
	74: "ffot",
	75: "SSot",
	76: "ffot",
	77: "SSot",
	78: "ffot",
	79: "S",
	80: "f",
	81: "f",
	82: "S",
	83: "S",
	84: "SSS",
	85: "S",
	86: "SSSSS",
	87: "SSS",
	88: "S",
	89: "",
	65535: "",
}

var v4pFormats = map[uint16]string{
	0: "",
	1: "",
	2: "",
	3: "n",
	4: "ot",
	5: "Sot",
	6: "SS",
	7: "ff",
	8: "SS",
	9: "ff",
	10: "SS",
	11: "ff",
	12: "SS",
	13: "ff",
	14: "SS",
	15: "ff",
	16: "SS",
	17: "ff",
	18: "SSS",
	19: "fff",
	20: "SSS",
	21: "fff",
	22: "SSS",
	23: "fff",
	24: "SSS",
	25: "fff",
	26: "SSS",
	27: "fff",
	28: "SSot",
	29: "ffot",
	30: "SSot",
	31: "ffot",
	32: "SSot",
	33: "ffot",
	34: "SSot",
	35: "ffot",
	36: "SSot",
	37: "ffot",
	38: "SSot",
	39: "ffot",
	40: "SS",
	41: "ff",
	42: "ff",
	43: "ff",
	44: "ff",
	45: "ff",
	46: "ff",
	47: "f",
	48: "fff",
	49: "fff",
	50: "ff",
	51: "S",
	52: "SSS",
	53: "fff",
	54: "ff",
	55: "SS",
	56: "SSfff",
	57: "SSSSS",
	58: "SSS",
	59: "SSfff",
	60: "SSff",
	61: "",
	62: "",
	63: "",
	64: "S",
	65: "ss",
	66: "S",
	67: "S",
	68: "S",
	69: "",
	70: "f",
	71: "f",
	72: "S",
	73: "S",
	74: "S",
	75: "S",
	76: "SSS",
	77: "S",
	78: "SSSSS",
	79: "SSS",
	80: "S",
	81: "",
	82: "S",
	83: "",
	84: "S",
	85: "S",
	86: "S",
	87: "S",
	88: "N",
	89: "S",
	90: "N",
	91: "N",
	92: "N",
	93: "SSf",
	94: "SSf",
	95: "N",
	96: "Nff",
	97: "Nff",
	98: "",
	99: "S",
	100: "Sfffffffff",
	101: "S",
	102: "nS",
	103: "ff",
	104: "fS",
	105: "fS",
	106: "ff",
	107: "SSff",
	108: "ff",
	109: "ff",
	110: "ff",
	111: "S",
	112: "S",
	113: "SSf",
	114: "S",
	65535: "",
}

var v8Formats = map[uint16]string{
	0: "",
	1: "",
	2: "",
	3: "",
	4: "",
	5: "S",
	6: "S",
	7: "",
	100: "SS",
	101: "ff",
	102: "SS",
	103: "ff",
	104: "SS",
	105: "ff",
	106: "SS",
	107: "ff",
	108: "SS",
	109: "ff",
	110: "SS",
	111: "ff",
	112: "SSS",
	113: "fff",
	114: "SSS",
	115: "fff",
	116: "SSS",
	117: "fff",
	118: "SSS",
	119: "fff",
	120: "SSS",
	121: "fff",
	122: "SS",
	123: "ff",
	124: "ff",
	125: "ff",
	126: "ff",
	127: "ff",
	128: "ff",
	129: "f",
	130: "ffff",
	131: "ffff",
	200: "ot",
	201: "Sot",
	202: "SSot",
	203: "ffot",
	204: "SSot",
	205: "ffot",
	206: "SSot",
	207: "ffot",
	208: "SSot",
	209: "ffot",
	210: "SSot",
	211: "ffot",
	212: "SSot",
	213: "ffot",
	300: "n",
	301: "nS",
	302: "S",
	303: "S",
	304: "S",
	305: "S",
	306: "S",
	307: "S",
	308: "",
	309: "",
	310: "S",
	311: "S",
	312: "SS",
	313: "S",
	314: "S",
	315: "S",
	316: "",
	317: "",
	318: "S",
	319: "SSSS",
	400: "fff",
	401: "fff",
	402: "ff",
	403: "S",
	404: "SSS",
	405: "S",
	406: "SSS",
	407: "SSfff",
	408: "SSSSS",
	409: "SSS",
	410: "SSfff",
	411: "SSf",
	412: "SSff",
	413: "SSSSS",
	414: "SSS",
	415: "fff",
	416: "ff",
	417: "SS",
	418: "",
	419: "S",
	420: "Sfffffffff",
	421: "ss",
	422: "",
	423: "S",
	424: "S",
	425: "f",
	426: "f",
	427: "SSf",
	428: "SSf",
	429: "ff",
	430: "SSff",
	431: "S",
	432: "S",
	433: "SSff",
	434: "ff",
	435: "SSff",
	436: "ff",
	437: "S",
	438: "S",
	439: "S",
	440: "",
	441: "fff",
	500: "N",
	501: "N",
	502: "N",
	503: "N",
	504: "N",
	505: "Nff",
	506: "Nff",
	507: "S",
	508: "S",
	509: "",
	510: "Sff",
	600: "S",
	601: "S",
	602: "S",
	603: "ff",
	604: "fS",
	605: "fS",
	606: "ff",
	607: "ff",
	608: "ff",
	609: "S",
	610: "S",
	611: "ffS",
	612: "ff",
	613: "ff",
	614: "ff",
	615: "ffS",
	616: "ffS",
	617: "fS",
	618: "",
	621: "ffS",
	622: "ffS",
	623: "fffS",
	626: "ffffS",
	627: "ffffS",
	628: "fS",
	631: "ffS",
	632: "ffS",
	633: "S",
	634: "f",
	65535: "",
}

var th18PatchFormats = map[uint16]string{
	439: "Sff",
}
