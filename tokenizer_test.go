package fenc

import (
	"reflect"
	"testing"
)

func TestExtractWordsLengthBounds(t *testing.T) {
	got := ExtractWords("a an and jump jumps jumping elephantine")
	want := []string{"elephantine", "jump", "jumping", "jumps"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractWords = %v, want %v", got, want)
	}
}

func TestExtractWordsSortedLexicographically(t *testing.T) {
	got := ExtractWords("zebra apple mango")
	want := []string{"apple", "mango", "zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractWords = %v, want %v", got, want)
	}
}

func TestExtractWordsUnicodeCategories(t *testing.T) {
	// café123 mixes Letter, and Decimal Number runes, all within one
	// maximal run; length 7 (rune count), within [4,12].
	got := ExtractWords("café123!")
	want := []string{"café123"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractWords = %v, want %v", got, want)
	}
}

func TestExpandPrefixesLengthFour(t *testing.T) {
	got := ExpandPrefixes("jump")
	want := []string{"jump"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandPrefixes(jump) = %v, want %v", got, want)
	}
}

func TestExpandPrefixesLengthFive(t *testing.T) {
	got := ExpandPrefixes("jumps")
	want := []string{"jump*", "jumps"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandPrefixes(jumps) = %v, want %v", got, want)
	}
}

func TestExpandPrefixesLongerWord(t *testing.T) {
	got := ExpandPrefixes("elephantine") // length 11
	want := []string{
		"elep*", "eleph*", "elepha*", "elephan*", "elephant*", "elephanti*", "elephantin*",
		"elephantine",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandPrefixes(elephantine) = %v, want %v", got, want)
	}
}

func TestExtractVariantsOrder(t *testing.T) {
	got := ExtractVariants("quick fox jumps")
	// fox has length 3, below MinTokenLen, dropped entirely; jumps and
	// quick remain, in sorted word order, each expanded to its prefixes.
	want := append(append([]string{}, ExpandPrefixes("jumps")...), ExpandPrefixes("quick")...)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractVariants = %v, want %v", got, want)
	}
}
