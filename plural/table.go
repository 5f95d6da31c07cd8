package plural

import "strings"

// lookupKnown resolves a whitespace-stripped Plural-Forms header against
// the table of canonical forms. A miss is not an error; the caller falls
// back to the generic interpreter.
func lookupKnown(normalized string) (Evaluator, bool) {
	e, ok := knownRules[normalized]
	return e, ok
}

func canon(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

// knownRules maps the canonical Plural-Forms headers of the standard
// gettext language families to hand-written evaluators. The map is
// initialized once and never mutated.
var knownRules = map[string]Evaluator{
	// Asian family: Japanese, Chinese, Korean, Vietnamese, Thai.
	canon("nplurals=1; plural=0;"): func(n int) int {
		return 0
	},

	// Germanic and Romance two-form family: English, German, Dutch,
	// Spanish, Italian, and most others.
	canon("nplurals=2; plural=(n != 1);"): evalTwoFormNotOne,
	canon("nplurals=2; plural=n != 1;"):   evalTwoFormNotOne,

	// French, Brazilian Portuguese.
	canon("nplurals=2; plural=(n > 1);"): evalTwoFormGreaterOne,
	canon("nplurals=2; plural=n > 1;"):   evalTwoFormGreaterOne,

	// Icelandic.
	canon("nplurals=2; plural=(n%10!=1 || n%100==11);"): func(n int) int {
		if n%10 == 1 && n%100 != 11 {
			return 0
		}
		return 1
	},

	// Latvian.
	canon("nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n != 0 ? 1 : 2);"): func(n int) int {
		if n%10 == 1 && n%100 != 11 {
			return 0
		}
		if n != 0 {
			return 1
		}
		return 2
	},

	// Gaeilge three-form variant.
	canon("nplurals=3; plural=n==1 ? 0 : n==2 ? 1 : 2;"): func(n int) int {
		if n == 1 {
			return 0
		}
		if n == 2 {
			return 1
		}
		return 2
	},

	// Romanian.
	canon("nplurals=3; plural=n==1 ? 0 : (n==0 || (n%100 > 0 && n%100 < 20)) ? 1 : 2;"): func(n int) int {
		if n == 1 {
			return 0
		}
		if n == 0 || (n%100 > 0 && n%100 < 20) {
			return 1
		}
		return 2
	},

	// Lithuanian.
	canon("nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && (n%100<10 || n%100>=20) ? 1 : 2);"): func(n int) int {
		if n%10 == 1 && n%100 != 11 {
			return 0
		}
		if n%10 >= 2 && (n%100 < 10 || n%100 >= 20) {
			return 1
		}
		return 2
	},

	// East Slavic family: Russian, Ukrainian, Belarusian, Serbian, Croatian.
	canon("nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);"): evalSlavicThreeForm,

	// Czech, Slovak.
	canon("nplurals=3; plural=(n==1) ? 0 : (n>=2 && n<=4) ? 1 : 2;"): func(n int) int {
		if n == 1 {
			return 0
		}
		if n >= 2 && n <= 4 {
			return 1
		}
		return 2
	},

	// Polish.
	canon("nplurals=3; plural=(n==1 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);"): func(n int) int {
		if n == 1 {
			return 0
		}
		if n%10 >= 2 && n%10 <= 4 && (n%100 < 10 || n%100 >= 20) {
			return 1
		}
		return 2
	},

	// Slovenian.
	canon("nplurals=4; plural=(n%100==1 ? 0 : n%100==2 ? 1 : n%100==3 || n%100==4 ? 2 : 3);"): func(n int) int {
		switch {
		case n%100 == 1:
			return 0
		case n%100 == 2:
			return 1
		case n%100 == 3 || n%100 == 4:
			return 2
		}
		return 3
	},

	// Scottish Gaelic.
	canon("nplurals=4; plural=(n==1 || n==11) ? 0 : (n==2 || n==12) ? 1 : (n > 2 && n < 20) ? 2 : 3;"): func(n int) int {
		switch {
		case n == 1 || n == 11:
			return 0
		case n == 2 || n == 12:
			return 1
		case n > 2 && n < 20:
			return 2
		}
		return 3
	},

	// Welsh.
	canon("nplurals=4; plural=(n==1) ? 0 : (n==2) ? 1 : (n != 8 && n != 11) ? 2 : 3;"): func(n int) int {
		switch {
		case n == 1:
			return 0
		case n == 2:
			return 1
		case n != 8 && n != 11:
			return 2
		}
		return 3
	},

	// Irish.
	canon("nplurals=5; plural=n==1 ? 0 : n==2 ? 1 : n<7 ? 2 : n<11 ? 3 : 4;"): func(n int) int {
		switch {
		case n == 1:
			return 0
		case n == 2:
			return 1
		case n < 7:
			return 2
		case n < 11:
			return 3
		}
		return 4
	},

	// Arabic.
	canon("nplurals=6; plural=(n==0 ? 0 : n==1 ? 1 : n==2 ? 2 : n%100>=3 && n%100<=10 ? 3 : n%100>=11 ? 4 : 5);"): evalArabic,
	canon("nplurals=6; plural=(n==0) ? 0 : (n==1) ? 1 : (n==2) ? 2 : (n%100>=3 && n%100<=10) ? 3 : (n%100>=11 && n%100<=99) ? 4 : 5;"): evalArabic,
}

func evalTwoFormNotOne(n int) int {
	if n == 1 {
		return 0
	}
	return 1
}

func evalTwoFormGreaterOne(n int) int {
	if n > 1 {
		return 1
	}
	return 0
}

func evalSlavicThreeForm(n int) int {
	if n%10 == 1 && n%100 != 11 {
		return 0
	}
	if n%10 >= 2 && n%10 <= 4 && (n%100 < 10 || n%100 >= 20) {
		return 1
	}
	return 2
}

func evalArabic(n int) int {
	switch {
	case n == 0:
		return 0
	case n == 1:
		return 1
	case n == 2:
		return 2
	case n%100 >= 3 && n%100 <= 10:
		return 3
	case n%100 >= 11 && n%100 <= 99:
		return 4
	}
	return 5
}
