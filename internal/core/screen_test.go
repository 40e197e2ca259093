package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("dimensions = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Errorf("cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColorAndBounds(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetColor(2, 3, '#', ColorBlue)

	c := s.GetCell(2, 3)
	if c.Rune != '#' || c.Color != ColorBlue {
		t.Errorf("GetCell(2, 3) = %+v, expected blue '#'", c)
	}

	// Out of bounds writes are dropped, reads return blank
	s.SetColor(-1, 0, 'X', ColorRed)
	s.SetColor(0, 99, 'X', ColorRed)
	if s.Get(-1, 0) != ' ' || s.Get(0, 99) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawTextClipsAndColors(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawText(5, 0, "corn", ColorYellow)

	if s.Row(0) != "     cor" {
		t.Errorf("Row(0) = %q, expected clipped text", s.Row(0))
	}
	if s.GetCell(5, 0).Color != ColorYellow {
		t.Errorf("text color = %v, expected yellow", s.GetCell(5, 0).Color)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextCentered(1, "Hi", ColorDefault)

	if s.Get(9, 1) != 'H' || s.Get(10, 1) != 'i' {
		t.Errorf("Row(1) = %q, expected centered text", s.Row(1))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 6)
	s.SetColor(3, 2, 'X', ColorRed)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorWhite)

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner %v = %q, expected %q", pos, got, want)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("box edges not drawn")
	}
	if s.Get(3, 2) != ' ' {
		t.Error("box interior should be cleared")
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello", ColorDefault)

	s.Resize(4, 2)
	if s.Row(0) != "Hell" {
		t.Errorf("after shrink Row(0) = %q", s.Row(0))
	}

	s.Resize(12, 3)
	if !strings.HasPrefix(s.Row(0), "Hell ") {
		t.Errorf("after grow Row(0) = %q", s.Row(0))
	}
	if len(s.Row(2)) != 12 {
		t.Errorf("new row length = %d, expected 12", len(s.Row(2)))
	}
}

func TestScreenStringAndClear(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc", ColorDefault)
	s.DrawText(0, 1, "def", ColorDefault)

	if s.String() != "abc\ndef" {
		t.Errorf("String() = %q", s.String())
	}

	s.Clear()
	if s.String() != "   \n   " {
		t.Errorf("after Clear String() = %q", s.String())
	}
	if s.Row(-1) != "   " {
		t.Errorf("out of bounds Row = %q", s.Row(-1))
	}
}
