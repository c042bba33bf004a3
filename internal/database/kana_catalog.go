package database

// kanaEntry describes one syllable in both scripts. The consonant line
// always names the unvoiced base line, so the voiced t-line "ji"/"zu"
// stay on line "t" and can be told apart from their s-line homophones.
type kanaEntry struct {
	reading  string
	mod      int // 0 = base, 1 = dakuten, 2 = handakuten
	line     string
	vowel    string
	hiragana string
	katakana string
}

var kanaCatalog = []kanaEntry{
	// Vowels
	{"a", 0, "", "a", "あ", "ア"},
	{"i", 0, "", "i", "い", "イ"},
	{"u", 0, "", "u", "う", "ウ"},
	{"e", 0, "", "e", "え", "エ"},
	{"o", 0, "", "o", "お", "オ"},
	// K line
	{"ka", 0, "k", "a", "か", "カ"},
	{"ki", 0, "k", "i", "き", "キ"},
	{"ku", 0, "k", "u", "く", "ク"},
	{"ke", 0, "k", "e", "け", "ケ"},
	{"ko", 0, "k", "o", "こ", "コ"},
	// S line
	{"sa", 0, "s", "a", "さ", "サ"},
	{"shi", 0, "s", "i", "し", "シ"},
	{"su", 0, "s", "u", "す", "ス"},
	{"se", 0, "s", "e", "せ", "セ"},
	{"so", 0, "s", "o", "そ", "ソ"},
	// T line
	{"ta", 0, "t", "a", "た", "タ"},
	{"chi", 0, "t", "i", "ち", "チ"},
	{"tsu", 0, "t", "u", "つ", "ツ"},
	{"te", 0, "t", "e", "て", "テ"},
	{"to", 0, "t", "o", "と", "ト"},
	// N line
	{"na", 0, "n", "a", "な", "ナ"},
	{"ni", 0, "n", "i", "に", "ニ"},
	{"nu", 0, "n", "u", "ぬ", "ヌ"},
	{"ne", 0, "n", "e", "ね", "ネ"},
	{"no", 0, "n", "o", "の", "ノ"},
	// H line
	{"ha", 0, "h", "a", "は", "ハ"},
	{"hi", 0, "h", "i", "ひ", "ヒ"},
	{"fu", 0, "h", "u", "ふ", "フ"},
	{"he", 0, "h", "e", "へ", "ヘ"},
	{"ho", 0, "h", "o", "ほ", "ホ"},
	// M line
	{"ma", 0, "m", "a", "ま", "マ"},
	{"mi", 0, "m", "i", "み", "ミ"},
	{"mu", 0, "m", "u", "む", "ム"},
	{"me", 0, "m", "e", "め", "メ"},
	{"mo", 0, "m", "o", "も", "モ"},
	// Y line
	{"ya", 0, "y", "a", "や", "ヤ"},
	{"yu", 0, "y", "u", "ゆ", "ユ"},
	{"yo", 0, "y", "o", "よ", "ヨ"},
	// R line
	{"ra", 0, "r", "a", "ら", "ラ"},
	{"ri", 0, "r", "i", "り", "リ"},
	{"ru", 0, "r", "u", "る", "ル"},
	{"re", 0, "r", "e", "れ", "レ"},
	{"ro", 0, "r", "o", "ろ", "ロ"},
	// W line
	{"wa", 0, "w", "a", "わ", "ワ"},
	{"wo", 0, "w", "o", "を", "ヲ"},
	// Syllabic n
	{"n", 0, "n", "", "ん", "ン"},
	// G line (K + dakuten)
	{"ga", 1, "k", "a", "が", "ガ"},
	{"gi", 1, "k", "i", "ぎ", "ギ"},
	{"gu", 1, "k", "u", "ぐ", "グ"},
	{"ge", 1, "k", "e", "げ", "ゲ"},
	{"go", 1, "k", "o", "ご", "ゴ"},
	// Z line (S + dakuten)
	{"za", 1, "s", "a", "ざ", "ザ"},
	{"ji", 1, "s", "i", "じ", "ジ"},
	{"zu", 1, "s", "u", "ず", "ズ"},
	{"ze", 1, "s", "e", "ぜ", "ゼ"},
	{"zo", 1, "s", "o", "ぞ", "ゾ"},
	// D line (T + dakuten)
	{"da", 1, "t", "a", "だ", "ダ"},
	{"ji", 1, "t", "i", "ぢ", "ヂ"},
	{"zu", 1, "t", "u", "づ", "ヅ"},
	{"de", 1, "t", "e", "で", "デ"},
	{"do", 1, "t", "o", "ど", "ド"},
	// B line (H + dakuten)
	{"ba", 1, "h", "a", "ば", "バ"},
	{"bi", 1, "h", "i", "び", "ビ"},
	{"bu", 1, "h", "u", "ぶ", "ブ"},
	{"be", 1, "h", "e", "べ", "ベ"},
	{"bo", 1, "h", "o", "ぼ", "ボ"},
	// P line (H + handakuten)
	{"pa", 2, "h", "a", "ぱ", "パ"},
	{"pi", 2, "h", "i", "ぴ", "ピ"},
	{"pu", 2, "h", "u", "ぷ", "プ"},
	{"pe", 2, "h", "e", "ぺ", "ペ"},
	{"po", 2, "h", "o", "ぽ", "ポ"},
}
