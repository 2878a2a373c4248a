// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kana

// Phonetic unit tables. Lookups are consulted in this order by Convert:
// clusterTable, irregularTable (3-letter window, then 2-letter window),
// then baseTable for a consonant followed by a vowel or a bare vowel.
// The tables are never written after package initialization.

// clusterTable holds palatalized consonant clusters.
var clusterTable = map[string]string{
	"kya": "キャ", "kyu": "キュ", "kyo": "キョ",
	"gya": "ギャ", "gyu": "ギュ", "gyo": "ギョ",
	"sha": "シャ", "shu": "シュ", "sho": "ショ",
	"cha": "チャ", "chu": "チュ", "cho": "チョ",
	"ja": "ジャ", "ju": "ジュ", "jo": "ジョ",
	"nya": "ニャ", "nyu": "ニュ", "nyo": "ニョ",
	"hya": "ヒャ", "hyu": "ヒュ", "hyo": "ヒョ",
	"mya": "ミャ", "myu": "ミュ", "myo": "ミョ",
	"rya": "リャ", "ryu": "リュ", "ryo": "リョ",
	"bya": "ビャ", "byu": "ビュ", "byo": "ビョ",
	"pya": "ピャ", "pyu": "ピュ", "pyo": "ピョ",
	"tya": "チャ", "tyu": "チュ", "tyo": "チョ",
	"dya": "ジャ", "dyu": "ジュ", "dyo": "ジョ",
}

// irregularTable holds Hepburn digraphs and loanword spellings that do not
// follow the regular consonant+vowel pattern.
var irregularTable = map[string]string{
	"shi": "シ", "chi": "チ", "tsu": "ツ", "fu": "フ", "ji": "ジ",
	"ti": "ティ", "di": "ディ", "tu": "トゥ", "du": "ドゥ",
	"je": "ジェ", "che": "チェ", "she": "シェ",
	"ci": "シ", "ce": "セ", "wi": "ウィ", "we": "ウェ", "wo": "ヲ",
	"ja": "ジャ", "ju": "ジュ", "jo": "ジョ",
}

// baseTable holds bare vowels and regular consonant+vowel syllables.
var baseTable = map[string]string{
	"a": "ア", "i": "イ", "u": "ウ", "e": "エ", "o": "オ",
	"ka": "カ", "ki": "キ", "ku": "ク", "ke": "ケ", "ko": "コ",
	"ga": "ガ", "gi": "ギ", "gu": "グ", "ge": "ゲ", "go": "ゴ",
	"sa": "サ", "si": "シ", "su": "ス", "se": "セ", "so": "ソ",
	"za": "ザ", "zi": "ジ", "zu": "ズ", "ze": "ゼ", "zo": "ゾ",
	"ta": "タ", "ti": "ティ", "tu": "トゥ", "te": "テ", "to": "ト",
	"da": "ダ", "di": "ディ", "du": "ドゥ", "de": "デ", "do": "ド",
	"na": "ナ", "ni": "ニ", "nu": "ヌ", "ne": "ネ", "no": "ノ",
	"ha": "ハ", "hi": "ヒ", "hu": "フ", "he": "ヘ", "ho": "ホ",
	"ba": "バ", "bi": "ビ", "bu": "ブ", "be": "ベ", "bo": "ボ",
	"pa": "パ", "pi": "ピ", "pu": "プ", "pe": "ペ", "po": "ポ",
	"ma": "マ", "mi": "ミ", "mu": "ム", "me": "メ", "mo": "モ",
	"ra": "ラ", "ri": "リ", "ru": "ル", "re": "レ", "ro": "ロ",
	"ya": "ヤ", "yu": "ユ", "yo": "ヨ",
	"wa": "ワ", "we": "ウェ", "wo": "ヲ",
	"va": "ヴァ", "vi": "ヴィ", "vu": "ヴ", "ve": "ヴェ", "vo": "ヴォ",
	"fa": "ファ", "fi": "フィ", "fe": "フェ", "fo": "フォ",
	"la": "ラ", "li": "リ", "lu": "ル", "le": "レ", "lo": "ロ",
	"ca": "カ", "ci": "シ", "cu": "ク", "ce": "セ", "co": "コ",
	"qa": "カ", "qi": "キ", "qu": "ク", "qe": "ケ", "qo": "コ",
}

// macronReplacer expands long-vowel marks into ASCII. ō and ô expand to
// "ou", never "oo".
var macronReplacer = []string{
	"ā", "aa", "ī", "ii", "ū", "uu", "ē", "ee", "ō", "ou",
	"â", "aa", "î", "ii", "û", "uu", "ê", "ee", "ô", "ou",
}

// longOSurnames lists family names whose trailing "to"/"do" is elongated
// when the surname long-O option is set.
var longOSurnames = map[string]struct{}{
	"saito": {}, "saitoh": {}, "saitou": {},
	"sato":  {},
	"ando":  {}, "kondo": {}, "endo": {}, "shindo": {},
	"goto":  {}, "mitsudo": {}, "kato": {}, "sudo": {},
}

const (
	smallTsu   = "ッ"
	syllabicN  = "ン"
	glideNi    = "ニ"
	longOU     = "オウ"
	longOUOver = "オウウ"
)

func isVowel(c byte) bool {
	switch c {
	case 'a', 'i', 'u', 'e', 'o':
		return true
	}
	return false
}

// isConsonant reports whether c is a lowercase ASCII letter other than a vowel.
func isConsonant(c byte) bool {
	return c >= 'a' && c <= 'z' && !isVowel(c)
}
