package lang

import "testing"

var allClasses = CountOptions{Comments: true, Blanks: true, Docstrings: true}

func TestCountLines_GoMixedClasses(t *testing.T) {
	src := `package main

// entry point
func main() {
	/* block
	   comment */
	println("hi")
}
`
	counts := CountLines("Go", src, allClasses)

	if counts.Total != 8 {
		t.Fatalf("expected 8 total lines, got %d", counts.Total)
	}
	if counts.Comments != 3 {
		t.Errorf("expected 3 comment lines, got %d", counts.Comments)
	}
	if counts.Blanks != 1 {
		t.Errorf("expected 1 blank line, got %d", counts.Blanks)
	}
	if counts.Code() != 4 {
		t.Errorf("expected 4 code lines, got %d", counts.Code())
	}
}

func TestCountLines_ClassesSumToTotal(t *testing.T) {
	src := "x = 1\n\n# note\n'''doc\n\nstring'''\nprint(x)\n"
	counts := CountLines("Python", src, allClasses)

	if got := counts.Code() + counts.Comments + counts.Blanks; got != counts.Total {
		t.Fatalf("classes sum to %d, total is %d", got, counts.Total)
	}
}

func TestCountLines_BlankInsideBlockCountsAsBlank(t *testing.T) {
	src := "/* open\n\nclose */\n"
	counts := CountLines("C", src, allClasses)

	if counts.Blanks != 1 {
		t.Errorf("expected 1 blank line inside block, got %d", counts.Blanks)
	}
	if counts.Comments != 2 {
		t.Errorf("expected 2 comment lines, got %d", counts.Comments)
	}
}

func TestCountLines_BlockClosedOnOpeningLine(t *testing.T) {
	src := "/* one liner */\nint x;\n"
	counts := CountLines("C", src, allClasses)

	if counts.Comments != 1 {
		t.Errorf("expected 1 comment line, got %d", counts.Comments)
	}
	if counts.Code() != 1 {
		t.Errorf("expected 1 code line, got %d", counts.Code())
	}
}

func TestCountLines_DocstringsRequireOption(t *testing.T) {
	src := "'''module doc\nspanning'''\nx = 1\n"

	with := CountLines("Python", src, allClasses)
	if with.Comments != 2 {
		t.Errorf("with docstrings: expected 2 comment lines, got %d", with.Comments)
	}

	without := CountLines("Python", src, CountOptions{Comments: true, Blanks: true})
	if without.Comments != 0 {
		t.Errorf("without docstrings: expected 0 comment lines, got %d", without.Comments)
	}
}

func TestCountLines_DisabledClassesStillCountTotal(t *testing.T) {
	src := "# comment\n\ncode\n"
	counts := CountLines("Shell", src, CountOptions{})

	if counts.Total != 3 {
		t.Errorf("expected total 3, got %d", counts.Total)
	}
	if counts.Comments != 0 || counts.Blanks != 0 {
		t.Errorf("disabled classes should report zero, got %d/%d", counts.Comments, counts.Blanks)
	}
}

func TestCountLines_ProseHasNoComments(t *testing.T) {
	src := "# Heading\n\nSome text with // a slash aside.\n"

	for _, language := range []string{"Markdown", "reStructuredText", "Text"} {
		counts := CountLines(language, src, allClasses)
		if counts.Comments != 0 {
			t.Errorf("%s: prose lines must never count as comments, got %d", language, counts.Comments)
		}
		if counts.Blanks != 1 {
			t.Errorf("%s: expected 1 blank line, got %d", language, counts.Blanks)
		}
		if counts.Code() != 2 {
			t.Errorf("%s: expected 2 content lines, got %d", language, counts.Code())
		}
	}
}

func TestCountLines_DataFormatsHaveNoFallbackComments(t *testing.T) {
	counts := CountLines("CSV", "#id,name\n1,a\n", allClasses)
	if counts.Comments != 0 {
		t.Errorf("CSV: expected 0 comments, got %d", counts.Comments)
	}

	counts = CountLines("JSON", "{\n  \"x\": 1\n}\n", allClasses)
	if counts.Code() != 3 {
		t.Errorf("JSON: expected 3 content lines, got %d", counts.Code())
	}
}

func TestCountLines_UnknownLanguageUsesFallback(t *testing.T) {
	src := "# hash comment\n// slash comment\nplain\n"
	counts := CountLines("Brainfuck", src, allClasses)

	if counts.Comments != 2 {
		t.Errorf("expected 2 fallback comment lines, got %d", counts.Comments)
	}
}

func TestCountLines_EmptyInput(t *testing.T) {
	counts := CountLines("Go", "", allClasses)
	if counts.Total != 0 || counts.Comments != 0 || counts.Blanks != 0 {
		t.Errorf("expected all-zero counts, got %+v", counts)
	}
}

func TestSplitLines_NoPhantomFinalLine(t *testing.T) {
	lines := SplitLines("a\nb\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	lines = SplitLines("a\nb")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines without trailing newline, got %d", len(lines))
	}
}

func TestSplitLines_StripsCarriageReturns(t *testing.T) {
	lines := SplitLines("a\r\nb\r\n")
	if lines[0] != "a" || lines[1] != "b" {
		t.Errorf("expected CRLF stripped, got %q", lines)
	}
}
