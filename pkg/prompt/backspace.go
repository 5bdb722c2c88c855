// Package prompt reads template variables from a user and cleans up the raw
// text a terminal hands back.
package prompt

// Backspace is the control character a terminal may leave in captured input
// when the user erases a character.
const Backspace = '\x08'

// RemoveBackspaces applies every backspace in input to the character before it
// and drops the backspace itself, so "ab\bc" becomes "ac". Backspaces with
// nothing left to erase are discarded.
func RemoveBackspaces(input string) string {
	runes := []rune(input)
	kept := make([]rune, len(runes))
	start := len(kept)
	pending := 0

	for i := len(runes) - 1; i >= 0; i-- {
		switch {
		case runes[i] == Backspace:
			pending++
		case pending > 0:
			pending--
		default:
			start--
			kept[start] = runes[i]
		}
	}

	return string(kept[start:])
}
