package effects

import (
	"fmt"
	"strings"

	"github.com/Jon-Bright/wordclock/clock"
)

// Word is one lit phrase element on the clock face.
type Word int

const (
	HourOneShort Word = iota // "EIN", only for one o'clock
	HourOne
	HourTwo
	HourThree
	HourFour
	HourFive
	HourSix
	HourSeven
	HourEight
	HourNine
	HourTen
	HourEleven
	HourTwelve
	Five // minutes
	Ten
	Twenty
	Quarter
	Half
	ThreeQuarters
	To
	Past
	It
	Is
	OClock
	numWords
)

// Position is a horizontal run of Len LEDs starting at X, Y.
type Position struct {
	X   int
	Y   int
	Len int
}

// Positions on the 11x10 German face, 0,0 at the bottom left:
//
//	ESKISTAFÜNF
//	ZEHNZWANZIG
//	DREIVIERTEL
//	TGNACHVORJM
//	HALBXZWÖLFP
//	ZWEINSIEBEN
//	KDREIRHFÜNF
//	ELFNEUNVIER
//	WACHTZEHNRS
//	BSECHSFMUHR
var wordPositions = [numWords]Position{
	HourOneShort:  {2, 4, 3},
	HourOne:       {2, 4, 4},
	HourTwo:       {0, 4, 4},
	HourThree:     {1, 3, 4},
	HourFour:      {7, 2, 4},
	HourFive:      {7, 3, 4},
	HourSix:       {1, 0, 5},
	HourSeven:     {5, 4, 6},
	HourEight:     {1, 1, 4},
	HourNine:      {3, 2, 4},
	HourTen:       {5, 1, 4},
	HourEleven:    {0, 2, 3},
	HourTwelve:    {5, 5, 5},
	Five:          {7, 9, 4},
	Ten:           {0, 8, 4},
	Twenty:        {4, 8, 7},
	Quarter:       {4, 7, 7},
	Half:          {0, 5, 4},
	ThreeQuarters: {0, 7, 11},
	To:            {6, 6, 3},
	Past:          {2, 6, 4},
	It:            {0, 9, 2},
	Is:            {3, 9, 3},
	OClock:        {8, 0, 3},
}

var wordNames = [numWords]string{
	HourOneShort:  "EIN",
	HourOne:       "EINS",
	HourTwo:       "ZWEI",
	HourThree:     "DREI",
	HourFour:      "VIER",
	HourFive:      "FÜNF",
	HourSix:       "SECHS",
	HourSeven:     "SIEBEN",
	HourEight:     "ACHT",
	HourNine:      "NEUN",
	HourTen:       "ZEHN",
	HourEleven:    "ELF",
	HourTwelve:    "ZWÖLF",
	Five:          "fünf",
	Ten:           "zehn",
	Twenty:        "zwanzig",
	Quarter:       "viertel",
	Half:          "halb",
	ThreeQuarters: "dreiviertel",
	To:            "vor",
	Past:          "nach",
	It:            "es",
	Is:            "ist",
	OClock:        "uhr",
}

func (w Word) String() string {
	if w < 0 || w >= numWords {
		return fmt.Sprintf("Word(%d)", int(w))
	}
	return wordNames[w]
}

func (w Word) Position() Position {
	return wordPositions[w]
}

// WordSet is the ordered list of words currently lit.
type WordSet []Word

func (ws WordSet) Equal(o WordSet) bool {
	if len(ws) != len(o) {
		return false
	}
	for i := range ws {
		if ws[i] != o[i] {
			return false
		}
	}
	return true
}

func (ws WordSet) String() string {
	s := make([]string, len(ws))
	for i, w := range ws {
		s[i] = w.String()
	}
	return strings.Join(s, " ")
}

// Dialect selects how the quarter hours are phrased.
type Dialect int

const (
	// "viertel nach drei" at 3:15, "viertel vor vier" at 3:45.
	DialectQuarterPast Dialect = iota
	// "viertel vier" at 3:15, "dreiviertel vier" at 3:45.
	DialectThreeQuarters
)

var StringDialects map[string]Dialect = map[string]Dialect{
	"quarter-past":   DialectQuarterPast,
	"three-quarters": DialectThreeQuarters,
}

func ParseDialect(s string) (Dialect, error) {
	d, ok := StringDialects[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown dialect %q", s)
	}
	return d, nil
}

// ClockConfig describes the face and its indicator rings.
type ClockConfig struct {
	Dialect Dialect
	// MinuteLEDs is the size of the minute ring. Without one (0), the
	// displayed time is centred on the real time by adding 2.5 minutes.
	MinuteLEDs int
	// SecondLEDs is the size of the second ring, 0 if there is none.
	SecondLEDs int
	// SecondOffset is the ring position that shows second zero.
	SecondOffset int
}

// Reading is what the clock face should show for a given time.
type Reading struct {
	Words WordSet
	// Minute after any centring adjustment.
	Minute int
	// MinuteLevel is the number of minute LEDs lit (minutes past the last
	// multiple of five). Always 0 without a minute ring.
	MinuteLevel int
	// SecondIndex is the last second LED lit, before SecondOffset is
	// applied. Always 0 without a second ring.
	SecondIndex int
}

var hourWords = [13]Word{
	0:  HourTwelve,
	1:  HourOne,
	2:  HourTwo,
	3:  HourThree,
	4:  HourFour,
	5:  HourFive,
	6:  HourSix,
	7:  HourSeven,
	8:  HourEight,
	9:  HourNine,
	10: HourTen,
	11: HourEleven,
	12: HourTwelve,
}

// minutePhrase returns the words for a minute and how many hours ahead
// the hour word must be.
func minutePhrase(minute int, d Dialect) ([]Word, int) {
	switch {
	case minute < 5:
		return []Word{OClock}, 0
	case minute < 10:
		return []Word{Five, Past}, 0
	case minute < 15:
		return []Word{Ten, Past}, 0
	case minute < 20:
		if d == DialectThreeQuarters {
			return []Word{Quarter}, 1
		}
		return []Word{Quarter, Past}, 0
	case minute < 25:
		return []Word{Twenty, Past}, 0
	case minute < 30:
		return []Word{Five, To, Half}, 1
	case minute < 35:
		return []Word{Half}, 1
	case minute < 40:
		return []Word{Five, Past, Half}, 1
	case minute < 45:
		return []Word{Twenty, To}, 1
	case minute < 50:
		if d == DialectThreeQuarters {
			return []Word{ThreeQuarters}, 1
		}
		return []Word{Quarter, To}, 1
	case minute < 55:
		return []Word{Ten, To}, 1
	default:
		return []Word{Five, To}, 1
	}
}

// Translate turns a time into the words and ring states to display.
func Translate(t clock.Time, cfg ClockConfig) Reading {
	hour, minute := t.Hour, t.Minute
	if cfg.MinuteLEDs == 0 {
		// 16:57:30..17:02:29 all show as "fünf uhr"
		off := 2
		if t.Second >= 30 {
			off = 3
		}
		if minute+off >= 60 {
			hour++
		}
		minute = (minute + off) % 60
	}

	words := WordSet{It, Is}
	phrase, delta := minutePhrase(minute, cfg.Dialect)
	words = append(words, phrase...)

	hour = (hour + delta) % 12
	if hour == 1 && minute < 5 {
		// "Es ist ein Uhr", but "es ist fünf nach eins"
		words = append(words, HourOneShort)
	} else {
		words = append(words, hourWords[hour])
	}

	r := Reading{Words: words, Minute: minute}
	if cfg.MinuteLEDs > 0 {
		r.MinuteLevel = minute % 5
	}
	if cfg.SecondLEDs > 0 {
		r.SecondIndex = t.Second * cfg.SecondLEDs / 60
	}
	return r
}

func (d Dialect) String() string {
	for k, v := range StringDialects {
		if v == d {
			return k
		}
	}
	return fmt.Sprintf("Dialect(%d)", int(d))
}
